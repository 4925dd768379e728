package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// Status of a single mod as reported by a run
type Status string

const (
	StatusFresh       Status = "fresh"       // Cached and current
	StatusStale       Status = "stale"       // Cached, evicted for re-download
	StatusMissing     Status = "missing"     // Not downloaded yet
	StatusUnchecked   Status = "unchecked"   // Changelog lookup failed, cache kept
	StatusLinked      Status = "linked"      // Symlink in place
	StatusUnavailable Status = "unavailable" // No download to link to
	StatusFailed      Status = "failed"      // Symlink could not be created
)

// statusMessages holds the line printed after each status
var statusMessages = map[Status]string{
	StatusFresh:       "no update required, skipping",
	StatusStale:       "update required",
	StatusMissing:     "not downloaded, will fetch",
	StatusUnchecked:   "changelog unavailable, keeping cached copy",
	StatusLinked:      "linked to",
	StatusUnavailable: "does not exist",
	StatusFailed:      "cannot link",
}

// StatusStyle returns the pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusFresh, StatusLinked:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusStale, StatusMissing:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case StatusUnchecked:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusUnavailable, StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// ModStatus is one mod line of a report
type ModStatus struct {
	Key    string
	ID     string
	Status Status
	// Target is shown after linked statuses
	Target string
}

// RenderModStatus renders a single mod line. plain drops all styling.
func RenderModStatus(ms ModStatus, plain bool) string {
	label := fmt.Sprintf("%-11s", ms.Status)
	if !plain {
		label = StatusStyle(ms.Status).Sprint(label)
	}

	msg := statusMessages[ms.Status]
	if ms.Target != "" {
		msg += " " + ms.Target
	}

	return fmt.Sprintf("    %s : %-24s : %-12s %s", label, ms.Key, ms.ID, strings.TrimSpace(msg))
}

// CountStatuses tallies statuses, keyed by status
func CountStatuses(statuses []ModStatus) map[Status]int {
	counts := make(map[Status]int)
	for _, s := range statuses {
		counts[s.Status]++
	}
	return counts
}

// Summary renders counts such as "2 missing, 1 fresh" in a fixed status order
func Summary(statuses []ModStatus) string {
	counts := CountStatuses(statuses)
	order := []Status{
		StatusMissing, StatusStale, StatusFresh, StatusUnchecked,
		StatusLinked, StatusUnavailable, StatusFailed,
	}

	var parts []string
	for _, s := range order {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		return "no mods"
	}
	return strings.Join(parts, ", ")
}
