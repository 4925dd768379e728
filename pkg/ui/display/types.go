// Package display holds the format-neutral results that renderers print
package display

import (
	"time"

	"github.com/arthur-debert/a3update/pkg/modfs"
	"github.com/arthur-debert/a3update/pkg/modlist"
	"github.com/arthur-debert/a3update/pkg/planner"
	"github.com/arthur-debert/a3update/pkg/style"
)

// Report is the top-level result of the plan, modlist and update commands
type Report struct {
	Command   string    `json:"command" yaml:"command" toml:"command"`
	Modlist   string    `json:"modlist,omitempty" yaml:"modlist,omitempty" toml:"modlist,omitempty"`
	DryRun    bool      `json:"dryRun" yaml:"dry_run" toml:"dry_run"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp" toml:"timestamp"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
	Mods      []Mod     `json:"mods" yaml:"mods" toml:"mods"`
}

// Mod is one modlist entry with what the run decided or did for it
type Mod struct {
	Key    string `json:"key" yaml:"key" toml:"key"`
	ID     string `json:"id" yaml:"id" toml:"id"`
	Status string `json:"status,omitempty" yaml:"status,omitempty" toml:"status,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
}

// Layout locates downloads for link reports
type Layout interface {
	CacheDir(id string) string
}

// NewReport creates an empty report for command
func NewReport(command, modlistPath string, dryRun bool) *Report {
	return &Report{
		Command:   command,
		Modlist:   modlistPath,
		DryRun:    dryRun,
		Timestamp: time.Now().UTC(),
		Mods:      []Mod{},
	}
}

// FromList reports every entry of list without a status
func FromList(command, modlistPath string, list *modlist.List) *Report {
	r := NewReport(command, modlistPath, false)
	for _, e := range list.Entries() {
		r.Mods = append(r.Mods, Mod{Key: e.Key, ID: e.ID})
	}
	return r
}

// FromPlan reports every entry of list, in list order, with its planning status
func FromPlan(command, modlistPath string, dryRun bool, list *modlist.List, plan *planner.Plan) *Report {
	statuses := make(map[string]style.Status, list.Len())
	mark := func(keys []string, s style.Status) {
		for _, k := range keys {
			statuses[k] = s
		}
	}
	mark(plan.Missing, style.StatusMissing)
	mark(plan.Stale, style.StatusStale)
	mark(plan.Fresh, style.StatusFresh)
	mark(plan.Unchecked, style.StatusUnchecked)

	r := NewReport(command, modlistPath, dryRun)
	for _, e := range list.Entries() {
		r.Mods = append(r.Mods, Mod{Key: e.Key, ID: e.ID, Status: string(statuses[e.Key])})
	}
	return r
}

// FromLinks reports the outcome of a relink of list
func FromLinks(command string, dryRun bool, list *modlist.List, result modfs.LinkResult, layout Layout) *Report {
	statuses := make(map[string]style.Status, list.Len())
	for _, k := range result.Created {
		statuses[k] = style.StatusLinked
	}
	for _, k := range result.Missing {
		statuses[k] = style.StatusUnavailable
	}
	for _, k := range result.Failed {
		statuses[k] = style.StatusFailed
	}

	r := NewReport(command, "", dryRun)
	for _, e := range list.Entries() {
		m := Mod{Key: e.Key, ID: e.ID, Status: string(statuses[e.Key])}
		if statuses[e.Key] == style.StatusLinked {
			m.Target = layout.CacheDir(e.ID)
		}
		r.Mods = append(r.Mods, m)
	}
	return r
}

// ModStatuses converts the report rows for the status line renderer
func (r *Report) ModStatuses() []style.ModStatus {
	out := make([]style.ModStatus, 0, len(r.Mods))
	for _, m := range r.Mods {
		out = append(out, style.ModStatus{Key: m.Key, ID: m.ID, Status: style.Status(m.Status), Target: m.Target})
	}
	return out
}

// Outdated returns the keys that will be fetched
func (r *Report) Outdated() []string {
	var keys []string
	for _, m := range r.Mods {
		if m.Status == string(style.StatusMissing) || m.Status == string(style.StatusStale) {
			keys = append(keys, m.Key)
		}
	}
	return keys
}
