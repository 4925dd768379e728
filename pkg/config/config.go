package config

import (
	"time"
)

// Config is the complete a3update configuration. Paths are absolute once
// Load has returned.
type Config struct {
	InstallRoot string   `koanf:"install_root"`
	Steam       Steam    `koanf:"steam"`
	Workshop    Workshop `koanf:"workshop"`
	Paths       Paths    `koanf:"paths"`
	Modlist     Modlist  `koanf:"modlist"`
	Server      Server   `koanf:"server"`
}

// Steam holds SteamCMD and account settings
type Steam struct {
	Cmd           string `koanf:"cmd"`
	Username      string `koanf:"username"`
	Password      string `koanf:"password"`
	ServerAppID   string `koanf:"server_app_id"`
	WorkshopAppID string `koanf:"workshop_app_id"`
}

// Workshop holds settings for the changelog lookups
type Workshop struct {
	ChangelogURL string        `koanf:"changelog_url"`
	HTTPTimeout  time.Duration `koanf:"http_timeout"`
	Retries      int           `koanf:"retries"`
	RetryDelay   time.Duration `koanf:"retry_delay"`
}

// Paths holds the installation layout
type Paths struct {
	GameInstallDir string `koanf:"game_install_dir"`
	ServerDir      string `koanf:"server_dir"`
	WorkshopDir    string `koanf:"workshop_dir"`
	ModsDir        string `koanf:"mods_dir"`
	ModlistsDir    string `koanf:"modlists_dir"`
	ServerCfg      string `koanf:"server_cfg"`
	BasicCfg       string `koanf:"basic_cfg"`
}

// Modlist selects the HTML export to read
type Modlist struct {
	// File skips interactive selection when set
	File      string `koanf:"file"`
	KeyPrefix string `koanf:"key_prefix"`
}

// Server holds the launch parameters of the dedicated server
type Server struct {
	Binary    string   `koanf:"binary"`
	Name      string   `koanf:"name"`
	World     string   `koanf:"world"`
	Port      int      `koanf:"port"`
	ExtraArgs []string `koanf:"extra_args"`
}

// HasCredentials reports whether both Steam username and password are set
func (c *Config) HasCredentials() bool {
	return c.Steam.Username != "" && c.Steam.Password != ""
}
