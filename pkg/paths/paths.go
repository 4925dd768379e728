package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/a3update/pkg/config"
)

// Paths provides the installation layout
type Paths interface {
	InstallRoot() string
	SteamCmd() string
	GameInstallDir() string
	ServerDir() string
	WorkshopDir() string
	ModsDir() string
	ModlistsDir() string
	ServerConfig() string
	BasicConfig() string
	ServerBinary() string

	// CacheDir is the content-addressed download directory of one mod
	CacheDir(id string) string
	// LinkPath is the stable symlink for one mod key
	LinkPath(key string) string
	// ModsPrefix is the mods directory as the server config refers to it
	ModsPrefix() string
}

// paths implements Paths over a resolved configuration
type paths struct {
	installRoot    string
	steamCmd       string
	gameInstallDir string
	serverDir      string
	workshopDir    string
	modsDir        string
	modlistsDir    string
	serverConfig   string
	basicConfig    string
	serverBinary   string
}

// New creates a Paths instance from configuration produced by config.Load
func New(cfg *config.Config) Paths {
	return &paths{
		installRoot:    cfg.InstallRoot,
		steamCmd:       cfg.Steam.Cmd,
		gameInstallDir: cfg.Paths.GameInstallDir,
		serverDir:      cfg.Paths.ServerDir,
		workshopDir:    cfg.Paths.WorkshopDir,
		modsDir:        cfg.Paths.ModsDir,
		modlistsDir:    cfg.Paths.ModlistsDir,
		serverConfig:   cfg.Paths.ServerCfg,
		basicConfig:    cfg.Paths.BasicCfg,
		serverBinary:   resolveBinary(cfg.Paths.ServerDir, cfg.Server.Binary),
	}
}

func (p *paths) InstallRoot() string    { return p.installRoot }
func (p *paths) SteamCmd() string       { return p.steamCmd }
func (p *paths) GameInstallDir() string { return p.gameInstallDir }
func (p *paths) ServerDir() string      { return p.serverDir }
func (p *paths) WorkshopDir() string    { return p.workshopDir }
func (p *paths) ModsDir() string        { return p.modsDir }
func (p *paths) ModlistsDir() string    { return p.modlistsDir }
func (p *paths) ServerConfig() string   { return p.serverConfig }
func (p *paths) BasicConfig() string    { return p.basicConfig }
func (p *paths) ServerBinary() string   { return p.serverBinary }

func (p *paths) CacheDir(id string) string {
	return filepath.Join(p.workshopDir, id)
}

func (p *paths) LinkPath(key string) string {
	return filepath.Join(p.modsDir, key)
}

// ModsPrefix returns the mods directory relative to the server directory,
// with forward slashes, because the server resolves mod paths from its cwd.
// A mods directory outside the server tree is returned as an absolute path.
func (p *paths) ModsPrefix() string {
	rel, err := filepath.Rel(p.serverDir, p.modsDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(p.modsDir)
	}
	return filepath.ToSlash(rel)
}

func resolveBinary(serverDir, binary string) string {
	if binary == "" || filepath.IsAbs(binary) {
		return binary
	}
	return filepath.Join(serverDir, binary)
}
