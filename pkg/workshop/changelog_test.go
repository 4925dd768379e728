package workshop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncements(t *testing.T) {
	got, err := Announcements(changelogPage(1700000500, 1600000000))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Update: 1700000500", got[0].Headline)
	assert.Equal(t, int64(1700000500), got[0].Posted.Unix())
	assert.Equal(t, "Fixed <b>things</b><br/>Added stuff", got[0].Body)
	assert.Equal(t, int64(1600000000), got[1].Posted.Unix())
}

func TestChangelogMarkdown(t *testing.T) {
	md, err := ChangelogMarkdown("@cba_a3 (450814934)", changelogPage(1700000500))
	require.NoError(t, err)

	assert.Contains(t, md, "# @cba_a3 (450814934)")
	assert.Contains(t, md, "## Update: 1700000500")
	assert.Contains(t, md, "_Posted 2023-11-14T22:21:40Z_")
	assert.Contains(t, md, "**things**")
}

func TestChangelogMarkdownEmpty(t *testing.T) {
	md, err := ChangelogMarkdown("Mod", "<html></html>")
	require.NoError(t, err)
	assert.Contains(t, md, "_No announcements._")
}

func TestChangelogMarkdownDropsScripts(t *testing.T) {
	page := `<html><body>
<div class="detailBox workshopAnnouncement">
	<div class="changelog headline">Hotfix</div>
	<p id="1700000500">Fixed <i>sway</i><script>alert(1)</script><img src="x" onerror="steal()"></p>
</div></body></html>`

	md, err := ChangelogMarkdown("Mod", page)
	require.NoError(t, err)
	assert.Contains(t, md, "sway")
	assert.NotContains(t, md, "alert")
	assert.NotContains(t, md, "steal")
}
