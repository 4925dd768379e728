// pkg/modlist/extract_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: testdata/preset.html
// PURPOSE: Test preset parsing, key derivation and skip policy

package modlist

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(name, href string) string {
	return `<tr data-type="ModContainer"><td data-type="DisplayName">` + name +
		`</td><td><a data-type="Link" href="` + href + `">link</a></td></tr>`
}

func table(rows ...string) string {
	return "<html><body><table>" + strings.Join(rows, "") + "</table></body></html>"
}

func TestExtractFilePreset(t *testing.T) {
	list, stats, err := ExtractFile(filepath.Join("testdata", "preset.html"))
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Key: "@ace_compat", ID: "450814997"},
		{Key: "@cba_a3", ID: "450814934"},
	}, list.Entries())
	assert.Equal(t, map[string]string{"@ace_compat": "450814997", "@cba_a3": "450814934"}, list.Map())
	assert.Equal(t, Stats{Rows: 2, Added: 2}, stats)
}

func TestExtractFileMissing(t *testing.T) {
	_, _, err := ExtractFile(filepath.Join(t.TempDir(), "nope.html"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrModlistRead))
}

func TestExtractSkipsUnusableRows(t *testing.T) {
	doc := table(
		row("Good Mod", "https://steamcommunity.com/sharedfiles/filedetails/?id=1"),
		`<tr data-type="ModContainer"><td data-type="DisplayName">No Link</td></tr>`,
		`<tr data-type="ModContainer"><td data-type="DisplayName">No Href</td><td><a data-type="Link">x</a></td></tr>`,
		row("Local Mod", "file:///mods/local"),
		`<tr data-type="ModContainer"><td><a data-type="Link" href="?id=7">x</a></td></tr>`,
		row("", "?id=8"),
		`<tr><td data-type="DisplayName">Not A Container</td><td><a data-type="Link" href="?id=9">x</a></td></tr>`,
	)

	list, stats, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"@good_mod"}, list.Keys())
	assert.Equal(t, 6, stats.Rows)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 5, stats.Skipped)
}

func TestExtractDuplicateKeyOverwritesInPlace(t *testing.T) {
	doc := table(
		row("Alpha", "?id=1"),
		row("Beta", "?id=2"),
		row("alpha", "?id=3"),
	)

	list, stats, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []Entry{{Key: "@alpha", ID: "3"}, {Key: "@beta", ID: "2"}}, list.Entries())
	assert.Equal(t, 1, stats.Duplicates)
}

func TestExtractFirstDigitRun(t *testing.T) {
	doc := table(row("Mod", "https://steamcommunity.com/workshop/filedetails/?id=12345&searchtext=id=999"))

	list, _, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)

	id, ok := list.Get("@mod")
	require.True(t, ok)
	assert.Equal(t, "12345", id)
}

func TestExtractIgnoresNestedMarkupInName(t *testing.T) {
	doc := table(`<tr data-type="ModContainer"><td data-type="DisplayName">RHS USAF<span>dlc</span></td>` +
		`<td><a data-type="Link" href="?id=843577117">x</a></td></tr>`)

	list, _, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"@rhs_usaf"}, list.Keys())
}

func TestExtractUnexpectedDocument(t *testing.T) {
	list, stats, err := Extract(strings.NewReader("<html><body><p>not a preset</p></body></html>"))
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())
	assert.Equal(t, Stats{}, stats)
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces", "Ace Compat", "@ace_compat"},
		{"underscore kept", "CBA_A3", "@cba_a3"},
		{"several spaces", "Task Force  Radio", "@task_force__radio"},
		{"unicode", "Ärmel Öl", "@ärmel_öl"},
		{"punctuation kept", "3CB Factions (BAF)", "@3cb_factions_(baf)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFor(tt.in))
		})
	}
}

func TestExtractorCustomPrefix(t *testing.T) {
	e := Extractor{KeyPrefix: "+"}
	assert.Equal(t, "+ace", e.Key("ACE"))

	list, _, err := e.Extract(strings.NewReader(table(row("ACE", "?id=463939057"))))
	require.NoError(t, err)
	assert.Equal(t, []string{"+ace"}, list.Keys())
}
