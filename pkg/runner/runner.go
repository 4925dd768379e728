package runner

import (
	"context"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/filesystem"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/modfs"
	"github.com/arthur-debert/a3update/pkg/modlist"
	"github.com/arthur-debert/a3update/pkg/paths"
	"github.com/arthur-debert/a3update/pkg/planner"
	"github.com/arthur-debert/a3update/pkg/process"
	"github.com/arthur-debert/a3update/pkg/server"
	"github.com/arthur-debert/a3update/pkg/servercfg"
	"github.com/arthur-debert/a3update/pkg/steamcmd"
	"github.com/arthur-debert/a3update/pkg/types"
	"github.com/arthur-debert/a3update/pkg/ui"
	"github.com/arthur-debert/a3update/pkg/ui/display"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options selects the steps of a run
type Options struct {
	UpdateGame  bool
	UpdateMods  bool
	StartServer bool
	// DryRun reports what would happen without downloading, evicting,
	// linking, writing or launching anything
	DryRun bool
}

// Any reports whether at least one step is selected
func (o Options) Any() bool {
	return o.UpdateGame || o.UpdateMods || o.StartServer
}

// CredentialSource provides the Steam login, prompting at most once
type CredentialSource interface {
	Get(ctx context.Context) (steamcmd.Credentials, error)
}

// Deps are the collaborators of a run
type Deps struct {
	Config      *config.Config
	Paths       paths.Paths
	FS          types.FS
	Process     process.Runner
	Checker     planner.Checker
	Chooser     modlist.Chooser
	Credentials CredentialSource
	Output      ui.Renderer
}

// Result collects what a run did
type Result struct {
	// RunID tags every log line of the run
	RunID     string
	Modlist   string
	List      *modlist.List
	Plan      *planner.Plan
	Lowercase modfs.LowercaseStats
	Links     modfs.LinkResult
	// ConfigChanged reports whether server.cfg was (or would be) rewritten
	ConfigChanged bool
	// Warnings are failures the run continued past
	Warnings []error
}

// Runner executes runs
type Runner struct {
	deps   Deps
	steam  *steamcmd.Client
	server *server.Launcher
	base   zerolog.Logger
	logger zerolog.Logger
}

// New creates a Runner
func New(deps Deps) *Runner {
	return &Runner{
		deps:   deps,
		steam:  steamcmd.New(deps.Process, steamcmd.OptionsFromConfig(deps.Config)),
		server: server.New(deps.Process, deps.Paths, deps.Config.Server),
		base:   logging.GetLogger("runner"),
	}
}

// Run performs the selected steps in order. Fatal errors stop the run;
// SteamCMD failures are reported as warnings and the run goes on.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}
	r.logger = r.base.With().Str("run_id", result.RunID).Logger()
	done := logging.LogOperationStart(r.logger, "run")
	defer done()

	if !opts.Any() {
		return nil, errors.New(errors.ErrInvalidInput, "nothing to do: choose update-game, update-mods or start-server")
	}

	fsys := r.deps.FS
	if opts.DryRun {
		fsys = filesystem.NewDryRun(fsys)
	}

	if opts.UpdateGame {
		if err := r.updateGame(ctx, opts, result); err != nil {
			return result, err
		}
	}

	if opts.UpdateMods {
		if err := r.updateMods(ctx, fsys, opts, result); err != nil {
			return result, err
		}
	}

	if opts.StartServer {
		if err := r.section("Start A3 server"); err != nil {
			return result, err
		}
		if opts.DryRun {
			return result, r.message("Dry run: would start [code]" + r.server.Command().String() + "[/code]")
		}
		if err := r.server.Start(ctx); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (r *Runner) updateGame(ctx context.Context, opts Options, result *Result) error {
	if err := r.section("Update A3 server"); err != nil {
		return err
	}
	if opts.DryRun {
		return r.message("Dry run: skipping SteamCMD app update")
	}

	creds, err := r.deps.Credentials.Get(ctx)
	if err != nil {
		return err
	}
	return r.steamError(r.steam.UpdateServer(ctx, creds), result)
}

func (r *Runner) updateMods(ctx context.Context, fsys types.FS, opts Options, result *Result) error {
	cfg := r.deps.Config

	if err := r.section("Select modlist"); err != nil {
		return err
	}
	path, err := r.selectModlist()
	if err != nil {
		return err
	}
	list, stats, err := modlist.Extractor{KeyPrefix: cfg.Modlist.KeyPrefix}.ExtractFile(path)
	if err != nil {
		return err
	}
	result.Modlist, result.List = path, list
	if err := r.message("Using [path]" + path + "[/path]"); err != nil {
		return err
	}
	if stats.Skipped > 0 {
		r.logger.Warn().Int("skipped", stats.Skipped).Msg("Some modlist rows were skipped")
	}

	if err := r.section("Check for mod updates"); err != nil {
		return err
	}
	plan, err := planner.New(fsys, r.deps.Checker, r.deps.Paths).Plan(ctx, list)
	if err != nil {
		return err
	}
	result.Plan = plan
	if err := r.deps.Output.RenderResult(display.FromPlan("plan", path, opts.DryRun, list, plan)); err != nil {
		return err
	}

	if plan.Empty() {
		if err := r.message("[success]All mods are up to date[/success]"); err != nil {
			return err
		}
	} else {
		if err := r.section("Update mods"); err != nil {
			return err
		}
		if opts.DryRun {
			if err := r.message("Dry run: skipping SteamCMD workshop download"); err != nil {
				return err
			}
		} else {
			creds, err := r.deps.Credentials.Get(ctx)
			if err != nil {
				return err
			}
			if err := r.steamError(r.steam.UpdateMods(ctx, creds, plan.Outdated), result); err != nil {
				return err
			}
		}
	}

	if err := r.section("Lowercase workshop files"); err != nil {
		return err
	}
	result.Lowercase, err = modfs.LowercaseTree(fsys, r.deps.Paths.WorkshopDir())
	if err != nil {
		return err
	}

	if err := r.section("Link mods"); err != nil {
		return err
	}
	result.Links, err = modfs.Relink(fsys, r.deps.Paths, list)
	if err != nil {
		return err
	}
	if err := r.deps.Output.RenderResult(display.FromLinks("link", opts.DryRun, list, result.Links, r.deps.Paths)); err != nil {
		return err
	}

	if err := r.section("Update server config"); err != nil {
		return err
	}
	line := servercfg.ModsLine(r.deps.Paths.ModsPrefix(), list.Keys())
	result.ConfigChanged, err = servercfg.PatchFile(fsys, r.deps.Paths.ServerConfig(), line)
	if err != nil {
		return err
	}
	if result.ConfigChanged {
		return r.message("Wrote [code]" + line + "[/code] to [path]" + r.deps.Paths.ServerConfig() + "[/path]")
	}
	return r.message("Server config already up to date")
}

// selectModlist honours a configured modlist file before asking
func (r *Runner) selectModlist() (string, error) {
	return modlist.Resolve(r.deps.Config.Modlist.File, r.deps.Paths.ModlistsDir(), r.deps.Chooser)
}

// steamError downgrades SteamCMD failures to warnings. Cancellation and
// other errors stay fatal.
func (r *Runner) steamError(err error, result *Result) error {
	if err == nil || !errors.IsErrorCode(err, errors.ErrSteamCmd) {
		return err
	}
	r.logger.Warn().Err(err).Msg("SteamCMD failed, continuing")
	result.Warnings = append(result.Warnings, err)
	return r.deps.Output.RenderError(err)
}

func (r *Runner) section(title string) error {
	r.logger.Info().Str("step", title).Msg("Step")
	return r.deps.Output.RenderSection(title)
}

func (r *Runner) message(msg string) error {
	return r.deps.Output.RenderMessage(msg)
}
