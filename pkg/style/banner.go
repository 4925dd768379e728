package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Banner frames msg between two rules of '=' as wide as the message,
// preceded by an empty line
func Banner(msg string, plain bool) string {
	rule := strings.Repeat("=", lipgloss.Width(msg))
	if plain {
		return "\n" + rule + "\n" + msg + "\n" + rule + "\n"
	}

	ruleStyle := pterm.NewStyle(pterm.FgCyan)
	titleStyle := pterm.NewStyle(pterm.FgLightWhite, pterm.Bold)
	return "\n" + ruleStyle.Sprint(rule) + "\n" + titleStyle.Sprint(msg) + "\n" + ruleStyle.Sprint(rule) + "\n"
}
