// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/style"
	"github.com/arthur-debert/a3update/pkg/ui/display"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders a report, a string, or any other value
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Report:
		return r.renderReport(v)
	case string:
		_, err := fmt.Fprintln(r.output, style.Render(v))
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderReport(report *display.Report) error {
	if report.Message != "" {
		if _, err := fmt.Fprintf(r.output, "%s\n\n", style.Render(report.Message)); err != nil {
			return err
		}
	}
	if len(report.Mods) == 0 {
		_, err := fmt.Fprintln(r.output, style.MutedStyle.Render("No mods."))
		return err
	}

	hasStatus := false
	for _, ms := range report.ModStatuses() {
		line := fmt.Sprintf("    %s : %s", style.KeyStyle.Render(fmt.Sprintf("%-24s", ms.Key)), ms.ID)
		if ms.Status != "" {
			hasStatus = true
			line = style.RenderModStatus(ms, false)
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}

	if hasStatus {
		summary := style.SubtitleStyle.Render(style.Summary(report.ModStatuses()))
		if _, err := fmt.Fprintf(r.output, "\n%s %s\n", style.InfoIndicator, summary); err != nil {
			return err
		}
	}
	if report.DryRun {
		if _, err := fmt.Fprintln(r.output, style.MutedStyle.Render("(dry run, nothing was changed)")); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error, listing its details below it
func (r *Renderer) RenderError(err error) error {
	if _, writeErr := fmt.Fprintf(r.output, "%s %s\n", style.ErrorIndicator, style.ErrorStyle.Render(err.Error())); writeErr != nil {
		return writeErr
	}
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, writeErr := fmt.Fprintf(r.output, "    %s: %v\n", style.MutedStyle.Render(k), details[k]); writeErr != nil {
			return writeErr
		}
	}
	return nil
}

// RenderMessage renders a message with markup
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Render(msg))
	return err
}

// RenderSection prints a framed heading
func (r *Renderer) RenderSection(title string) error {
	_, err := fmt.Fprint(r.output, style.Banner(title, false))
	return err
}

// Flush is a no-op: output is written as it is rendered
func (r *Renderer) Flush() error {
	return nil
}
