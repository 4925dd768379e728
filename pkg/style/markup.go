package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var tagPattern = regexp.MustCompile(`\[(/?)([a-z_]+)\]`)

// MarkupParser renders [tag]text[/tag] markup used in user messages
type MarkupParser struct {
	styles map[string]lipgloss.Style
}

// NewMarkupParser creates a parser with the default tags
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{
		styles: map[string]lipgloss.Style{
			"title":     TitleStyle,
			"subtitle":  SubtitleStyle,
			"success":   SuccessStyle,
			"error":     ErrorStyle,
			"warning":   WarningStyle,
			"info":      InfoStyle,
			"code":      CodeStyle,
			"path":      PathStyle,
			"muted":     MutedStyle,
			"bold":      lipgloss.NewStyle().Bold(true),
			"italic":    lipgloss.NewStyle().Italic(true),
			"underline": lipgloss.NewStyle().Underline(true),

			// Mod tags
			"key":     KeyStyle,
			"fresh":   FreshStyle,
			"stale":   StaleStyle,
			"missing": MissingStyle,
			"link":    LinkStyle,
		},
	}
}

// Render processes markup text and returns styled output. Nested tags are
// resolved innermost first.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		previous := result
		for tag, style := range p.styles {
			pattern := regexp.MustCompile(`\[` + tag + `\](.*?)\[/` + tag + `\]`)
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				return style.Render(submatch[1])
			})
		}
		if result == previous {
			return result
		}
	}
}

// Strip removes known tags, leaving their content unstyled
func (p *MarkupParser) Strip(text string) string {
	return tagPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := tagPattern.FindStringSubmatch(match)[2]
		if _, ok := p.styles[name]; ok {
			return ""
		}
		return match
	})
}

// AddStyle registers or replaces a tag
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
}

// RenderTemplate substitutes {{name}} placeholders, then renders markup
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}

var defaultParser = NewMarkupParser()

// Render renders markup with the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip removes markup with the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}

// RenderTemplate is a convenience function using the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
