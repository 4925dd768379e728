package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/arthur-debert/a3update/pkg/cobrax/topics"
	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/credentials"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/filesystem"
	"github.com/arthur-debert/a3update/pkg/modlist"
	"github.com/arthur-debert/a3update/pkg/paths"
	"github.com/arthur-debert/a3update/pkg/planner"
	"github.com/arthur-debert/a3update/pkg/runner"
	"github.com/arthur-debert/a3update/pkg/ui"
	"github.com/arthur-debert/a3update/pkg/ui/display"
	"github.com/arthur-debert/a3update/pkg/workshop"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func runUpdate(cmd *cobra.Command, env Env, g *globalFlags, opts runner.Options) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	out, err := g.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	r := runner.New(runner.Deps{
		Config:      cfg,
		Paths:       paths.New(cfg),
		FS:          filesystem.NewOS(),
		Process:     env.Process,
		Checker:     workshop.NewChecker(env.changelogs(cfg)),
		Chooser:     env.Chooser,
		Credentials: credentials.New(cfg.Steam, env.Prompter),
		Output:      out,
	})

	log.Info().
		Bool("update_game", opts.UpdateGame).
		Bool("update_mods", opts.UpdateMods).
		Bool("start_server", opts.StartServer).
		Bool("dry_run", opts.DryRun).
		Msg("Starting run")

	result, err := r.Run(cmd.Context(), opts)
	if err == nil {
		if n := len(result.Warnings); n > 0 {
			err = out.RenderMessage(fmt.Sprintf("[warning]"+MsgWarningsSuffix+"[/warning]", n))
		}
	}
	// What was rendered before a failure is still written out
	if flushErr := out.Flush(); err == nil {
		err = flushErr
	}
	return err
}

// loadModlist resolves and parses the modlist the other commands work on
func loadModlist(cfg *config.Config, p paths.Paths, chooser modlist.Chooser) (string, *modlist.List, error) {
	path, err := modlist.Resolve(cfg.Modlist.File, p.ModlistsDir(), chooser)
	if err != nil {
		return "", nil, err
	}
	list, stats, err := modlist.Extractor{KeyPrefix: cfg.Modlist.KeyPrefix}.ExtractFile(path)
	if err != nil {
		return "", nil, err
	}
	if stats.Skipped > 0 {
		log.Warn().Int("skipped", stats.Skipped).Str("modlist", path).Msg("Some modlist rows were skipped")
	}
	return path, list, nil
}

func newPlanCmd(env Env, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "plan",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			out, err := g.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			p := paths.New(cfg)
			path, list, err := loadModlist(cfg, p, env.Chooser)
			if err != nil {
				return err
			}

			// Stale downloads are only reported, never evicted
			fsys := filesystem.NewDryRun(filesystem.NewOS())
			plan, err := planner.New(fsys, workshop.NewChecker(env.changelogs(cfg)), p).Plan(cmd.Context(), list)
			if err != nil {
				return err
			}
			if err := out.RenderResult(display.FromPlan("plan", path, true, list, plan)); err != nil {
				return err
			}
			return out.Flush()
		},
	}
}

func newModlistCmd(env Env, g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "modlist",
		Short:   MsgModlistShort,
		Long:    MsgModlistLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			out, err := g.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			path, list, err := loadModlist(cfg, paths.New(cfg), env.Chooser)
			if err != nil {
				return err
			}
			if err := out.RenderResult(display.FromList("modlist", path, list)); err != nil {
				return err
			}
			return out.Flush()
		},
	}
}

func newChangelogCmd(env Env, g *globalFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "changelog <id|@key>",
		Short:   MsgChangelogShort,
		Long:    MsgChangelogLong,
		Example: MsgChangelogExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}

			title, id := args[0], args[0]
			if _, err := strconv.ParseUint(id, 10, 64); err != nil {
				path, list, err := loadModlist(cfg, paths.New(cfg), env.Chooser)
				if err != nil {
					return err
				}
				var ok bool
				if id, ok = list.Get(title); !ok {
					return errors.Newf(errors.ErrNotFound, MsgErrUnknownMod, title, path).
						WithDetail("mod", title)
				}
			}

			page, err := env.changelogs(cfg).Changelog(cmd.Context(), id)
			if err != nil {
				return err
			}
			md, err := workshop.ChangelogMarkdown(title, page)
			if err != nil {
				return errors.Wrapf(err, errors.ErrChangelogFetch, "cannot read changelog of %s", title).
					WithDetail("id", id)
			}

			if !raw && richOutput(cmd, g) {
				if rendered, err := topics.NewGlamourRenderer().Markdown(md); err == nil {
					md = rendered
				} else {
					log.Debug().Err(err).Msg("Markdown rendering failed, printing source")
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, MsgFlagRaw)
	return cmd
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Dump(cfg)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot render configuration")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// richOutput reports whether styled terminal output was asked for, or
// detected when the format is left on auto
func richOutput(cmd *cobra.Command, g *globalFlags) bool {
	format, err := ui.ParseFormat(g.output)
	if err != nil {
		return false
	}
	if format == ui.FormatAuto {
		file, ok := cmd.OutOrStdout().(*os.File)
		if !ok {
			return false
		}
		format = ui.DetectFormat(file)
	}
	return format == ui.FormatTerminal
}

// RenderError prints err on stderr. JSON output gets a JSON error; other
// document formats fall back to text.
func RenderError(rootCmd *cobra.Command, err error) {
	output, _ := rootCmd.PersistentFlags().GetString("output")
	format, parseErr := ui.ParseFormat(output)
	switch {
	case parseErr != nil:
		format = ui.FormatAuto
	case format == ui.FormatYAML, format == ui.FormatTOML, format == ui.FormatXML:
		format = ui.FormatText
	}

	w := rootCmd.ErrOrStderr()
	r, rErr := ui.NewRenderer(format, w)
	if rErr == nil {
		rErr = r.RenderError(err)
	}
	if rErr == nil {
		rErr = r.Flush()
	}
	if rErr != nil {
		_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	}
}
