// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/a3update/pkg/style"
	"github.com/arthur-debert/a3update/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a report, a string, or any other value as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Report:
		return r.renderReport(v)
	case string:
		_, err := fmt.Fprintln(r.output, v)
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderReport(report *display.Report) error {
	if report.Message != "" {
		if _, err := fmt.Fprintf(r.output, "%s\n\n", style.Strip(report.Message)); err != nil {
			return err
		}
	}
	if len(report.Mods) == 0 {
		_, err := fmt.Fprintln(r.output, "No mods.")
		return err
	}

	hasStatus := false
	for _, ms := range report.ModStatuses() {
		line := fmt.Sprintf("    %-24s : %s", ms.Key, ms.ID)
		if ms.Status != "" {
			hasStatus = true
			line = style.RenderModStatus(ms, true)
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}

	if hasStatus {
		if _, err := fmt.Fprintf(r.output, "\n%s\n", style.Summary(report.ModStatuses())); err != nil {
			return err
		}
	}
	if report.DryRun {
		if _, err := fmt.Fprintln(r.output, "(dry run, nothing was changed)"); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return writeErr
}

// RenderMessage renders a message with its markup removed
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, style.Strip(msg))
	return err
}

// RenderSection prints a framed heading
func (r *Renderer) RenderSection(title string) error {
	_, err := fmt.Fprint(r.output, style.Banner(title, true))
	return err
}

// Flush is a no-op: output is written as it is rendered
func (r *Renderer) Flush() error {
	return nil
}
