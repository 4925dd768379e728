// pkg/style/style_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test styling helpers, banners, mod status lines and markup

package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextStyles(t *testing.T) {
	tests := []struct {
		name  string
		style func(string) string
	}{
		{name: "bold", style: Bold},
		{name: "italic", style: Italic},
		{name: "underline", style: Underline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.style("Hello World"), "Hello World")
		})
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		expected string
	}{
		{name: "no indent", level: 0, expected: "Hello"},
		{name: "single indent", level: 1, expected: "  Hello"},
		{name: "double indent", level: 2, expected: "    Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Indent("Hello", tt.level))
		})
	}
}

func TestBanner(t *testing.T) {
	t.Run("plain frames the message", func(t *testing.T) {
		assert.Equal(t, "\n===========\nUpdate mods\n===========\n", Banner("Update mods", true))
	})

	t.Run("styled keeps the message", func(t *testing.T) {
		result := Banner("Start A3 server", false)
		assert.Contains(t, result, "Start A3 server")
		assert.Contains(t, result, strings.Repeat("=", len("Start A3 server")))
	})
}

func TestRenderModStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   ModStatus
		contains []string
	}{
		{
			name:     "fresh",
			status:   ModStatus{Key: "@cba_a3", ID: "450814934", Status: StatusFresh},
			contains: []string{"fresh", "@cba_a3", "450814934", "no update required, skipping"},
		},
		{
			name:     "missing",
			status:   ModStatus{Key: "@ace_compat", ID: "450814997", Status: StatusMissing},
			contains: []string{"missing", "@ace_compat", "will fetch"},
		},
		{
			name: "linked shows target",
			status: ModStatus{
				Key:    "@cba_a3",
				ID:     "450814934",
				Status: StatusLinked,
				Target: "/srv/workshop/450814934",
			},
			contains: []string{"linked", "linked to /srv/workshop/450814934"},
		},
		{
			name:     "unavailable",
			status:   ModStatus{Key: "@gone", ID: "1", Status: StatusUnavailable},
			contains: []string{"unavailable", "@gone", "does not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderModStatus(tt.status, true)
			for _, want := range tt.contains {
				assert.Contains(t, result, want)
			}
			assert.NotContains(t, result, "\x1b[", "plain output must not carry escape codes")
			assert.True(t, strings.HasPrefix(result, "    "+string(tt.status.Status)))
		})
	}
}

func TestSummary(t *testing.T) {
	statuses := []ModStatus{
		{Key: "@a", Status: StatusFresh},
		{Key: "@b", Status: StatusMissing},
		{Key: "@c", Status: StatusMissing},
		{Key: "@d", Status: StatusUnchecked},
	}

	assert.Equal(t, "2 missing, 1 fresh, 1 unchecked", Summary(statuses))
	assert.Equal(t, "no mods", Summary(nil))
	assert.Equal(t, 2, CountStatuses(statuses)[StatusMissing])
}

func TestStatusStyle(t *testing.T) {
	for _, s := range []Status{StatusFresh, StatusStale, StatusMissing, StatusUnchecked, StatusLinked, StatusUnavailable, StatusFailed, Status("other")} {
		assert.NotNil(t, StatusStyle(s), "status %s", s)
	}
}

func TestMarkup(t *testing.T) {
	t.Run("render removes known tags", func(t *testing.T) {
		result := Render("Mod [key]@ace[/key] is [stale]stale[/stale]")
		assert.Contains(t, result, "@ace")
		assert.Contains(t, result, "stale")
		assert.NotContains(t, result, "[key]")
		assert.NotContains(t, result, "[/stale]")
	})

	t.Run("nested tags", func(t *testing.T) {
		result := Render("[bold][key]@cba_a3[/key][/bold]")
		assert.Contains(t, result, "@cba_a3")
		assert.NotContains(t, result, "[")
	})

	t.Run("strip leaves unknown tags", func(t *testing.T) {
		result := Strip("[key]@ace[/key] is [missing]missing[/missing] [unknown]x[/unknown]")
		assert.Equal(t, "@ace is missing [unknown]x[/unknown]", result)
	})

	t.Run("template", func(t *testing.T) {
		parser := NewMarkupParser()
		result := parser.RenderTemplate("Updating {{count}} mods", map[string]string{"count": "2"})
		assert.Contains(t, result, "Updating 2 mods")
	})
}
