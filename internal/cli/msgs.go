package cli

import (
	_ "embed"
	"strings"
)

// Message constants
const (
	// Command descriptions
	MsgRootShort       = "Keep an Arma 3 server and its Workshop mods up to date"
	MsgPlanShort       = "Show which mods need downloading"
	MsgChangelogShort  = "Print the Workshop changelog of a mod"
	MsgModlistShort    = "List the mods of the selected modlist"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate the autocompletion script for the specified shell"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Preview changes without downloading, linking or writing anything"
	MsgFlagConfig      = "Config file (default <install root>/a3update.toml)"
	MsgFlagInstallRoot = "Installation root, overrides install_root"
	MsgFlagOutput      = "Output format: %s"
	MsgFlagUpdateAll   = "Update the game and the mods (does not start the server)"
	MsgFlagUpdateGame  = "Update the Arma 3 dedicated server"
	MsgFlagUpdateMods  = "Update the mods of a modlist"
	MsgFlagStartServer = "Start the server"
	MsgFlagRaw         = "Print the changelog as Markdown source"

	// Output
	MsgVersion        = "a3update version %s\n"
	MsgVersionCommit  = "Commit: %s\n"
	MsgVersionBuilt   = "Built:  %s\n"
	MsgWarningsSuffix = "Finished with %d warning(s)"
	MsgNoStepSelected = "no step selected"

	// Errors
	MsgErrUnknownMod = "mod %s is not in %s"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	msgPlanExampleRaw string
	MsgPlanExample    = strings.TrimRight(msgPlanExampleRaw, "\n")

	//go:embed msgs/changelog-long.txt
	msgChangelogLongRaw string
	MsgChangelogLong    = strings.TrimSpace(msgChangelogLongRaw)

	//go:embed msgs/changelog-example.txt
	msgChangelogExampleRaw string
	MsgChangelogExample    = strings.TrimRight(msgChangelogExampleRaw, "\n")

	//go:embed msgs/modlist-long.txt
	msgModlistLongRaw string
	MsgModlistLong    = strings.TrimSpace(msgModlistLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
