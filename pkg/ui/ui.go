// Package ui provides a unified interface for rendering output in different formats.
// It supports terminal (rich), text (plain), JSON, YAML, TOML and XML output.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/ui/document"
	"github.com/arthur-debert/a3update/pkg/ui/json"
	"github.com/arthur-debert/a3update/pkg/ui/terminal"
	"github.com/arthur-debert/a3update/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a result, typically a *display.Report
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message, which may carry style markup
	RenderMessage(msg string) error

	// RenderSection starts a new step of a run. Document formats ignore it.
	RenderSection(title string) error

	// Flush writes anything held back. Callers flush once they are done.
	Flush() error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		// Buffers and pipes get plain text
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	case FormatYAML:
		return document.New(output, document.YAML)
	case FormatTOML:
		return document.New(output, document.TOML)
	case FormatXML:
		return document.New(output, document.XML)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
