package workshop

import (
	"context"
	"fmt"
)

// changelogPage builds a changelog page with one announcement per timestamp
func changelogPage(timestamps ...int64) string {
	page := `<html><body><div class="workshopItemTitle">Mod</div>`
	for _, ts := range timestamps {
		page += fmt.Sprintf(`
<div class="detailBox workshopAnnouncement noFooter changeLogCtn">
	<div class="changelog headline">
		Update: %d
	</div>
	<p id="%d">Fixed <b>things</b><br>Added stuff</p>
</div>`, ts, ts)
	}
	return page + "</body></html>"
}

type fakeSource struct {
	pages map[string]string
	err   error
	calls []string
}

func (f *fakeSource) Changelog(ctx context.Context, id string) (string, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return "", f.err
	}
	return f.pages[id], nil
}
