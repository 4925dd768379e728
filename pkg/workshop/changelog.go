package workshop

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const announcementClass = "workshopAnnouncement"

// announcementPolicy strips scripts, styles and event handlers from
// author-written announcement bodies
var announcementPolicy = bluemonday.UGCPolicy()

// Announcement is one entry of a changelog page
type Announcement struct {
	Posted   time.Time
	Headline string
	// Body is the inner HTML of the announcement paragraph
	Body string
}

// Announcements returns the entries of a changelog page, newest first as Steam lists them
func Announcements(page string) ([]Announcement, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var out []Announcement
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Div && hasClass(n, announcementClass) {
			if a, ok := parseAnnouncement(n); ok {
				out = append(out, a)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out, nil
}

func parseAnnouncement(n *html.Node) (Announcement, bool) {
	var a Announcement
	found := false

	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if found || c.Type != html.ElementNode {
			return
		}
		switch {
		case c.DataAtom == atom.Div && hasClass(c, "headline") && a.Headline == "":
			a.Headline = strings.Join(strings.Fields(textContent(c)), " ")
			return
		case c.DataAtom == atom.P:
			id, _ := getAttr(c, "id")
			sec, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return
			}
			a.Posted = time.Unix(sec, 0)
			a.Body = innerHTML(c)
			found = true
			return
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return a, found
}

// ChangelogMarkdown converts the announcements of a changelog page to Markdown
func ChangelogMarkdown(title, page string) (string, error) {
	announcements, err := Announcements(page)
	if err != nil {
		return "", err
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(announcements) == 0 {
		b.WriteString("_No announcements._\n")
		return b.String(), nil
	}

	for _, a := range announcements {
		heading := a.Headline
		if heading == "" {
			heading = a.Posted.UTC().Format(time.RFC1123)
		}
		fmt.Fprintf(&b, "## %s\n\n", heading)
		fmt.Fprintf(&b, "_Posted %s_\n\n", a.Posted.UTC().Format(time.RFC3339))

		body, err := conv.ConvertString(announcementPolicy.Sanitize(a.Body))
		if err != nil {
			return "", fmt.Errorf("convert announcement %d: %w", a.Posted.Unix(), err)
		}
		body = strings.TrimSpace(body)
		if body != "" {
			b.WriteString(body)
			b.WriteString("\n\n")
		}
	}
	return b.String(), nil
}

func hasClass(n *html.Node, class string) bool {
	v, _ := getAttr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return b.String()
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}
