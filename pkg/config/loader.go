package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every a3update environment variable
	EnvPrefix = "A3UPDATE_"

	// EnvInstallRoot overrides install_root before the config file is located
	EnvInstallRoot = "A3UPDATE_INSTALL_ROOT"

	// EnvSteamUsername and EnvSteamPassword carry the Steam credentials
	EnvSteamUsername = "STEAM_USERNAME"
	EnvSteamPassword = "STEAM_PASSWORD"

	// FileName is the config file looked up in the install root
	FileName = "a3update.toml"

	// DotEnvFile is read from the working directory when present
	DotEnvFile = ".env"
)

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit config path; it must exist when set
	ConfigFile string
	// InstallRoot overrides install_root from every other source
	InstallRoot string
	// EnvFile overrides the .env location
	EnvFile string
}

// Load builds the configuration from defaults, config file, .env and environment
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	configPath, explicit := configFilePath(opts)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", configPath)
	}

	// 3. .env file
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DotEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		values, err := readDotEnv(envFile)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to merge %s", envFile)
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}
	if err := k.Load(env.Provider("STEAM_", ".", steamEnvKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load steam env vars")
	}

	if opts.InstallRoot != "" {
		if err := k.Set("install_root", opts.InstallRoot); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to set install root")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := postProcessConfig(&cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// configFilePath returns the config file to read and whether the user asked for it
func configFilePath(opts LoadOptions) (string, bool) {
	if opts.ConfigFile != "" {
		return opts.ConfigFile, true
	}
	root := opts.InstallRoot
	if root == "" {
		root = os.Getenv(EnvInstallRoot)
	}
	if root == "" {
		root = "."
	}
	return filepath.Join(root, FileName), false
}

// envKey maps A3UPDATE_WORKSHOP__HTTP_TIMEOUT to workshop.http_timeout
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// steamEnvKey keeps only the two credential variables
func steamEnvKey(s string) string {
	switch s {
	case EnvSteamUsername:
		return "steam.username"
	case EnvSteamPassword:
		return "steam.password"
	default:
		return ""
	}
}

// readDotEnv parses a .env file into koanf keys
func readDotEnv(path string) (map[string]interface{}, error) {
	tempK := koanf.New(".")
	if err := tempK.Load(file.Provider(path), dotenv.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	values := make(map[string]interface{})
	for name, value := range tempK.All() {
		// Variables already exported win, as with any dotenv loader
		if _, set := os.LookupEnv(name); set {
			continue
		}
		switch {
		case steamEnvKey(name) != "":
			values[steamEnvKey(name)] = value
		case strings.HasPrefix(name, EnvPrefix):
			values[envKey(name)] = value
		}
	}
	return values, nil
}

func postProcessConfig(cfg *Config) error {
	root, err := filepath.Abs(cfg.InstallRoot)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid install_root %q", cfg.InstallRoot)
	}
	cfg.InstallRoot = root

	cfg.Steam.Cmd = resolve(root, cfg.Steam.Cmd)
	cfg.Paths.GameInstallDir = resolve(root, cfg.Paths.GameInstallDir)
	cfg.Paths.ServerDir = resolve(root, cfg.Paths.ServerDir)

	server := cfg.Paths.ServerDir
	if cfg.Paths.WorkshopDir == "" {
		cfg.Paths.WorkshopDir = filepath.Join("steamapps", "workshop", "content", cfg.Steam.WorkshopAppID)
	}
	cfg.Paths.WorkshopDir = resolve(server, cfg.Paths.WorkshopDir)
	cfg.Paths.ModsDir = resolve(server, cfg.Paths.ModsDir)
	cfg.Paths.ModlistsDir = resolve(server, cfg.Paths.ModlistsDir)
	cfg.Paths.ServerCfg = resolve(server, cfg.Paths.ServerCfg)
	cfg.Paths.BasicCfg = resolve(server, cfg.Paths.BasicCfg)

	if cfg.Modlist.File != "" {
		cfg.Modlist.File = resolve(cfg.Paths.ModlistsDir, cfg.Modlist.File)
	}

	return nil
}

func resolve(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func validate(cfg *Config) error {
	var problems []string
	if cfg.Steam.ServerAppID == "" {
		problems = append(problems, "steam.server_app_id is empty")
	}
	if cfg.Steam.WorkshopAppID == "" {
		problems = append(problems, "steam.workshop_app_id is empty")
	}
	if cfg.Workshop.ChangelogURL == "" {
		problems = append(problems, "workshop.changelog_url is empty")
	}
	if cfg.Workshop.Retries < 0 {
		problems = append(problems, "workshop.retries must not be negative")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", cfg.Server.Port))
	}
	if cfg.Modlist.KeyPrefix == "" {
		problems = append(problems, "modlist.key_prefix is empty")
	}
	if len(problems) > 0 {
		return errors.New(errors.ErrConfigValid, strings.Join(problems, "; ")).
			WithDetail("problems", problems)
	}
	return nil
}
