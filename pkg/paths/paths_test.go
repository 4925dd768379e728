package paths

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/stretchr/testify/assert"
)

func testConfig(root string) *config.Config {
	server := filepath.Join(root, "arma3", "install", "public")
	return &config.Config{
		InstallRoot: root,
		Steam:       config.Steam{Cmd: filepath.Join(root, "Steam", "steamcmd.sh")},
		Paths: config.Paths{
			GameInstallDir: filepath.Join(root, "arma3", "install"),
			ServerDir:      server,
			WorkshopDir:    filepath.Join(server, "steamapps", "workshop", "content", "107410"),
			ModsDir:        filepath.Join(server, "mods"),
			ModlistsDir:    filepath.Join(server, "modlists"),
			ServerCfg:      filepath.Join(server, "serverconfig", "server.cfg"),
			BasicCfg:       filepath.Join(server, "serverconfig", "basic.cfg"),
		},
		Server: config.Server{Binary: "arma3server"},
	}
}

func TestLayout(t *testing.T) {
	root := "/srv/a3"
	p := New(testConfig(root))
	server := "/srv/a3/arma3/install/public"

	assert.Equal(t, root, p.InstallRoot())
	assert.Equal(t, "/srv/a3/Steam/steamcmd.sh", p.SteamCmd())
	assert.Equal(t, "/srv/a3/arma3/install", p.GameInstallDir())
	assert.Equal(t, server, p.ServerDir())
	assert.Equal(t, server+"/serverconfig/server.cfg", p.ServerConfig())
	assert.Equal(t, server+"/serverconfig/basic.cfg", p.BasicConfig())
	assert.Equal(t, server+"/modlists", p.ModlistsDir())
	assert.Equal(t, server+"/arma3server", p.ServerBinary())
	assert.Equal(t, server+"/steamapps/workshop/content/107410/450814997", p.CacheDir("450814997"))
	assert.Equal(t, server+"/mods/@ace_compat", p.LinkPath("@ace_compat"))
}

func TestModsPrefix(t *testing.T) {
	tests := []struct {
		name    string
		modsDir string
		want    string
	}{
		{"default layout", "/srv/a3/arma3/install/public/mods", "mods"},
		{"nested", "/srv/a3/arma3/install/public/addons/mods", "addons/mods"},
		{"outside server dir", "/data/mods", "/data/mods"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("/srv/a3")
			cfg.Paths.ModsDir = tt.modsDir
			assert.Equal(t, tt.want, New(cfg).ModsPrefix())
		})
	}
}

func TestServerBinaryAbsolute(t *testing.T) {
	cfg := testConfig("/srv/a3")
	cfg.Server.Binary = "/opt/arma3/arma3server_x64"
	assert.Equal(t, "/opt/arma3/arma3server_x64", New(cfg).ServerBinary())
}
