package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/paths"
	"github.com/stretchr/testify/require"
)

// Mod is one row of a generated preset
type Mod struct {
	Name string
	ID   string
}

// Install is a throwaway installation rooted in a temp directory, with the
// configuration a3update would load for it
type Install struct {
	Root   string
	Config *config.Config
	Paths  paths.Paths

	t *testing.T
}

// NewInstall loads the default configuration for a fresh temp install root.
// Credentials and install-root variables from the caller's environment are
// cleared so they cannot leak into the test.
func NewInstall(t *testing.T) *Install {
	t.Helper()

	for _, name := range []string{config.EnvSteamUsername, config.EnvSteamPassword, config.EnvInstallRoot} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	root := t.TempDir()
	cfg, err := config.Load(config.LoadOptions{
		InstallRoot: root,
		EnvFile:     filepath.Join(root, ".env.missing"),
	})
	require.NoError(t, err, "load config for %s", root)

	return &Install{Root: root, Config: cfg, Paths: paths.New(cfg), t: t}
}

// MakeLayout creates the server, mods and modlists directories
func (i *Install) MakeLayout() *Install {
	i.t.Helper()
	for _, dir := range []string{i.Paths.ServerDir(), i.Paths.ModsDir(), i.Paths.ModlistsDir(), i.Paths.WorkshopDir()} {
		require.NoError(i.t, os.MkdirAll(dir, 0755))
	}
	return i
}

// AddPreset writes a launcher preset listing mods into the modlists directory
func (i *Install) AddPreset(name string, mods ...Mod) string {
	i.t.Helper()
	return CreateFile(i.t, i.Paths.ModlistsDir(), name, PresetHTML(mods...))
}

// AddDownload creates the download directory of id with the given files
func (i *Install) AddDownload(id string, files ...string) string {
	i.t.Helper()
	dir := i.Paths.CacheDir(id)
	require.NoError(i.t, os.MkdirAll(dir, 0755))
	for _, f := range files {
		CreateFile(i.t, dir, f, f)
	}
	return dir
}

// WriteServerConfig replaces server.cfg with content
func (i *Install) WriteServerConfig(content string) string {
	i.t.Helper()
	path := i.Paths.ServerConfig()
	return CreateFile(i.t, filepath.Dir(path), filepath.Base(path), content)
}

// PresetHTML renders mods the way the launcher exports a preset
func PresetHTML(mods ...Mod) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>
<html>
  <head>
    <meta name="arma:Type" content="preset" />
    <title>Arma 3</title>
  </head>
  <body>
    <div class="mod-list">
      <table>
`)
	for _, m := range mods {
		url := "https://steamcommunity.com/sharedfiles/filedetails/?id=" + m.ID
		fmt.Fprintf(&b, `        <tr data-type="ModContainer">
          <td data-type="DisplayName">%s</td>
          <td><span class="from-steam">Steam</span></td>
          <td><a href="%s" data-type="Link">%s</a></td>
        </tr>
`, m.Name, url, url)
	}
	b.WriteString("      </table>\n    </div>\n  </body>\n</html>\n")
	return b.String()
}
