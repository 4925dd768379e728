package modlist

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/logging"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultKeyPrefix is prepended to every mod key
const DefaultKeyPrefix = "@"

const (
	attrDataType     = "data-type"
	typeModContainer = "ModContainer"
	typeLink         = "Link"
	typeDisplayName  = "DisplayName"
)

var workshopIDPattern = regexp.MustCompile(`id=(\d+)`)

// Stats counts what happened to the rows of a preset
type Stats struct {
	Rows       int `json:"rows" yaml:"rows"`
	Added      int `json:"added" yaml:"added"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	Skipped    int `json:"skipped" yaml:"skipped"`
}

// Extractor turns preset documents into Lists
type Extractor struct {
	KeyPrefix string
}

// Extract parses a preset with the default key prefix
func Extract(r io.Reader) (*List, Stats, error) {
	return Extractor{KeyPrefix: DefaultKeyPrefix}.Extract(r)
}

// ExtractFile opens path and parses it with the default key prefix
func ExtractFile(path string) (*List, Stats, error) {
	return Extractor{KeyPrefix: DefaultKeyPrefix}.ExtractFile(path)
}

// KeyFor derives the mod key of a display name with the default prefix
func KeyFor(name string) string {
	return Extractor{KeyPrefix: DefaultKeyPrefix}.Key(name)
}

// Key derives the mod key of a display name: prefix, lowercased, spaces as underscores
func (e Extractor) Key(name string) string {
	lowered := cases.Lower(language.Und).String(name)
	return e.prefix() + strings.ReplaceAll(lowered, " ", "_")
}

func (e Extractor) prefix() string {
	if e.KeyPrefix == "" {
		return DefaultKeyPrefix
	}
	return e.KeyPrefix
}

// ExtractFile opens path and parses it
func (e Extractor) ExtractFile(path string) (*List, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, errors.Wrapf(err, errors.ErrModlistRead, "cannot open modlist %s", path)
	}
	defer func() { _ = f.Close() }()

	return e.Extract(f)
}

// Extract parses a preset document. Rows without a usable link or display
// name are skipped; a later row with an existing key replaces its ID.
func (e Extractor) Extract(r io.Reader) (*List, Stats, error) {
	logger := logging.GetLogger("modlist")

	doc, err := html.Parse(r)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, errors.ErrModlistRead, "cannot read modlist")
	}

	list := &List{}
	var stats Stats
	for _, row := range findAll(doc, atom.Tr, typeModContainer) {
		stats.Rows++

		id, name, reason := parseRow(row)
		if reason != "" {
			stats.Skipped++
			logger.Warn().Int("row", stats.Rows).Str("reason", reason).Msg("Skipping modlist row")
			continue
		}

		key := e.Key(name)
		if list.Set(key, id) {
			stats.Added++
		} else {
			stats.Duplicates++
			logger.Debug().Str("key", key).Str("id", id).Msg("Duplicate mod key, keeping last ID")
		}
	}

	logger.Debug().
		Int("rows", stats.Rows).
		Int("mods", list.Len()).
		Int("skipped", stats.Skipped).
		Msg("Modlist extracted")

	return list, stats, nil
}

// parseRow returns the ID and display name of a row, or why it is unusable
func parseRow(row *html.Node) (id, name, reason string) {
	link := findFirst(row, atom.A, typeLink)
	if link == nil {
		return "", "", "no link"
	}
	href, ok := getAttr(link, "href")
	if !ok {
		return "", "", "link has no href"
	}
	m := workshopIDPattern.FindStringSubmatch(href)
	if m == nil {
		return "", "", "no workshop id in link"
	}

	cell := findFirst(row, atom.Td, typeDisplayName)
	if cell == nil {
		return "", "", "no display name"
	}
	// Only the leading text counts; nested markup such as badges is ignored
	first := cell.FirstChild
	if first == nil || first.Type != html.TextNode {
		return "", "", "no display name"
	}
	name = strings.TrimSpace(first.Data)
	if name == "" {
		return "", "", "empty display name"
	}

	return m[1], name, ""
}

// findAll returns every element of the given tag carrying data-type=dataType, in document order
func findAll(root *html.Node, tag atom.Atom, dataType string) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isTyped(n, tag, dataType) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return results
}

// findFirst returns the first descendant of root matching tag and data-type
func findFirst(root *html.Node, tag atom.Atom, dataType string) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if isTyped(c, tag, dataType) {
			return c
		}
		if found := findFirst(c, tag, dataType); found != nil {
			return found
		}
	}
	return nil
}

func isTyped(n *html.Node, tag atom.Atom, dataType string) bool {
	if n.Type != html.ElementNode || n.DataAtom != tag {
		return false
	}
	v, _ := getAttr(n, attrDataType)
	return v == dataType
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
