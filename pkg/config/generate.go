package config

import (
	"github.com/pelletier/go-toml/v2"
)

const redacted = "********"

// Dump renders the effective configuration as TOML. The Steam password is
// never written out.
func Dump(cfg *Config) ([]byte, error) {
	return toml.Marshal(configToMap(cfg))
}

// configToMap converts a Config struct to the same key layout the loader reads
func configToMap(cfg *Config) map[string]interface{} {
	password := ""
	if cfg.Steam.Password != "" {
		password = redacted
	}

	return map[string]interface{}{
		"install_root": cfg.InstallRoot,
		"steam": map[string]interface{}{
			"cmd":             cfg.Steam.Cmd,
			"username":        cfg.Steam.Username,
			"password":        password,
			"server_app_id":   cfg.Steam.ServerAppID,
			"workshop_app_id": cfg.Steam.WorkshopAppID,
		},
		"workshop": map[string]interface{}{
			"changelog_url": cfg.Workshop.ChangelogURL,
			"http_timeout":  cfg.Workshop.HTTPTimeout.String(),
			"retries":       cfg.Workshop.Retries,
			"retry_delay":   cfg.Workshop.RetryDelay.String(),
		},
		"paths": map[string]interface{}{
			"game_install_dir": cfg.Paths.GameInstallDir,
			"server_dir":       cfg.Paths.ServerDir,
			"workshop_dir":     cfg.Paths.WorkshopDir,
			"mods_dir":         cfg.Paths.ModsDir,
			"modlists_dir":     cfg.Paths.ModlistsDir,
			"server_cfg":       cfg.Paths.ServerCfg,
			"basic_cfg":        cfg.Paths.BasicCfg,
		},
		"modlist": map[string]interface{}{
			"file":       cfg.Modlist.File,
			"key_prefix": cfg.Modlist.KeyPrefix,
		},
		"server": map[string]interface{}{
			"binary":     cfg.Server.Binary,
			"name":       cfg.Server.Name,
			"world":      cfg.Server.World,
			"port":       cfg.Server.Port,
			"extra_args": cfg.Server.ExtraArgs,
		},
	}
}
