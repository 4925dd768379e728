package cli

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/a3update/internal/version"
	"github.com/arthur-debert/a3update/pkg/cobrax/topics"
	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/credentials"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"github.com/arthur-debert/a3update/pkg/modlist"
	"github.com/arthur-debert/a3update/pkg/process"
	"github.com/arthur-debert/a3update/pkg/prompt"
	"github.com/arthur-debert/a3update/pkg/runner"
	"github.com/arthur-debert/a3update/pkg/ui"
	"github.com/arthur-debert/a3update/pkg/workshop"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFiles embed.FS

// Env is what the commands take from the process they run in
type Env struct {
	Out io.Writer
	Err io.Writer
	// Process runs SteamCMD and the server
	Process process.Runner
	// Changelogs replaces the configured Workshop client when set
	Changelogs workshop.ChangelogSource
	// Chooser and Prompter are nil without a terminal
	Chooser  modlist.Chooser
	Prompter credentials.Prompter
}

// DefaultEnv wires the commands to the real terminal and programs
func DefaultEnv() Env {
	env := Env{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Process: process.NewExecRunner(),
	}
	if term := prompt.NewTerminal(os.Stdin); term.Interactive() {
		env.Chooser = term
		env.Prompter = term
	}
	return env
}

func (e Env) changelogs(cfg *config.Config) workshop.ChangelogSource {
	if e.Changelogs != nil {
		return e.Changelogs
	}
	return workshop.NewClientFromConfig(cfg.Workshop)
}

// globalFlags are shared by every command
type globalFlags struct {
	verbosity   int
	dryRun      bool
	configFile  string
	installRoot string
	output      string
}

func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile:  g.configFile,
		InstallRoot: g.installRoot,
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("install_root", cfg.InstallRoot).Msg("Configuration loaded")
	return cfg, nil
}

func (g *globalFlags) renderer(w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(g.output)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

// NewRootCmd creates the root command wired to the real environment
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(DefaultEnv())
}

// NewRootCmdWithEnv creates the root command around env
func NewRootCmdWithEnv(env Env) *cobra.Command {
	initTemplateFormatting()

	var (
		g    globalFlags
		opts runner.Options
		all  bool
	)

	rootCmd := &cobra.Command{
		Use:     "a3update",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// -u never starts the server; that stays behind -s
			if all {
				opts.UpdateGame, opts.UpdateMods = true, true
			}
			opts.DryRun = g.dryRun
			if !opts.Any() {
				_ = cmd.Help()
				return errors.New(errors.ErrInvalidInput, MsgNoStepSelected)
			}
			return runUpdate(cmd, env, &g, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.SetOut(env.Out)
	rootCmd.SetErr(env.Err)

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&g.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&g.installRoot, "install-root", "", MsgFlagInstallRoot)
	pf.StringVarP(&g.output, "output", "o", "auto", fmt.Sprintf(MsgFlagOutput, strings.Join(ui.FormatNames(), ", ")))

	// Steps
	f := rootCmd.Flags()
	f.BoolVarP(&all, "update-all", "u", false, MsgFlagUpdateAll)
	f.BoolVarP(&opts.UpdateGame, "update-game", "g", false, MsgFlagUpdateGame)
	f.BoolVarP(&opts.UpdateMods, "update-mods", "m", false, MsgFlagUpdateMods)
	f.BoolVarP(&opts.StartServer, "start-server", "s", false, MsgFlagStartServer)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPlanCmd(env, &g))
	rootCmd.AddCommand(newModlistCmd(env, &g))
	rootCmd.AddCommand(newChangelogCmd(env, &g))
	rootCmd.AddCommand(newConfigCmd(&g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topics are embedded, so only a broken build can make this fail
	help, err := fs.Sub(helpFiles, "help")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, help, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersion, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgVersionCommit, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgVersionBuilt, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
