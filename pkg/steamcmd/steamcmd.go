package steamcmd

import (
	"context"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/modlist"
	"github.com/arthur-debert/a3update/pkg/process"
	"github.com/rs/zerolog"
)

// Steam app IDs of the Arma 3 dedicated server and of the game's Workshop
const (
	DefaultServerAppID   = "233780"
	DefaultWorkshopAppID = "107410"
)

// Credentials log SteamCMD into an account owning the game
type Credentials struct {
	Username string
	Password string
}

// Options locate SteamCMD and the install targets
type Options struct {
	SteamCmd       string
	ServerDir      string
	GameInstallDir string
	ServerAppID    string
	WorkshopAppID  string
}

// OptionsFromConfig builds Options from a loaded configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SteamCmd:       cfg.Steam.Cmd,
		ServerDir:      cfg.Paths.ServerDir,
		GameInstallDir: cfg.Paths.GameInstallDir,
		ServerAppID:    cfg.Steam.ServerAppID,
		WorkshopAppID:  cfg.Steam.WorkshopAppID,
	}
}

// Client runs SteamCMD
type Client struct {
	runner process.Runner
	opts   Options
	logger zerolog.Logger
}

// New creates a Client
func New(runner process.Runner, opts Options) *Client {
	if opts.ServerAppID == "" {
		opts.ServerAppID = DefaultServerAppID
	}
	if opts.WorkshopAppID == "" {
		opts.WorkshopAppID = DefaultWorkshopAppID
	}
	return &Client{
		runner: runner,
		opts:   opts,
		logger: logging.GetLogger("steamcmd"),
	}
}

// ModArgs returns the arguments downloading every mod of list into the server directory
func (c *Client) ModArgs(creds Credentials, list *modlist.List) []string {
	args := []string{"+force_install_dir", c.opts.ServerDir}
	args = append(args, loginArgs(creds)...)
	for _, e := range list.Entries() {
		args = append(args, "+workshop_download_item", c.opts.WorkshopAppID, e.ID, "validate")
	}
	return append(args, "+quit")
}

// ServerArgs returns the arguments installing or validating the dedicated server
func (c *Client) ServerArgs(creds Credentials) []string {
	args := []string{"+force_install_dir", c.opts.GameInstallDir}
	args = append(args, loginArgs(creds)...)
	return append(args, "+app_update", c.opts.ServerAppID, "validate", "+quit")
}

// UpdateMods downloads the mods of list. An empty list runs nothing.
// A failed or non-zero SteamCMD run is returned as an ErrSteamCmd error.
func (c *Client) UpdateMods(ctx context.Context, creds Credentials, list *modlist.List) error {
	if list.Len() == 0 {
		return nil
	}
	for _, e := range list.Entries() {
		c.logger.Info().Str("mod", e.Key).Str("id", e.ID).Msg("Queueing mod download")
	}
	return c.run(ctx, "workshop download", c.ModArgs(creds, list), creds)
}

// UpdateServer installs or validates the dedicated server app
func (c *Client) UpdateServer(ctx context.Context, creds Credentials) error {
	c.logger.Info().Str("app_id", c.opts.ServerAppID).Msg("Updating server")
	return c.run(ctx, "app update", c.ServerArgs(creds), creds)
}

func (c *Client) run(ctx context.Context, operation string, args []string, creds Credentials) error {
	done := logging.LogOperationStart(c.logger, operation)
	defer done()

	cmd := process.Command{
		Path:    c.opts.SteamCmd,
		Args:    args,
		Secrets: []string{creds.Password},
	}
	err := c.runner.Run(ctx, cmd)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), errors.ErrCancelled, "steamcmd interrupted")
	}

	code := process.ExitCode(err)
	return errors.Wrapf(err, errors.ErrSteamCmd, "steamcmd %s failed (exit code %d)", operation, code).
		WithDetail("exit_code", code).
		WithDetail("command", cmd.String())
}

func loginArgs(creds Credentials) []string {
	return []string{"+login", creds.Username, creds.Password}
}
