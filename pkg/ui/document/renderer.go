// Package document renders results as YAML, TOML or XML documents
package document

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/arthur-debert/a3update/pkg/style"
	"github.com/arthur-debert/a3update/pkg/ui/display"
	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Kind selects the document syntax
type Kind string

const (
	YAML Kind = "yaml"
	TOML Kind = "toml"
	XML  Kind = "xml"
)

// Renderer writes one document per rendered value. YAML documents are
// streamed with "---" separators. TOML and XML have no stream form, so their
// values are held until Flush: a single value is written as is, several go
// under a [[document]] array or a <documents> root.
type Renderer struct {
	output  io.Writer
	kind    Kind
	written int
	pending []interface{}
}

// New creates a document renderer of the given kind
func New(output io.Writer, kind Kind) (*Renderer, error) {
	switch kind {
	case YAML, TOML, XML:
		return &Renderer{output: output, kind: kind}, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown document kind %q", kind)
	}
}

// RenderResult encodes result. Values other than reports and maps are
// wrapped in a message document.
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Report, map[string]string, map[string]interface{}:
		return r.encode(v)
	default:
		return r.RenderMessage(fmt.Sprintf("%v", result))
	}
}

// RenderError encodes err with its code
func (r *Renderer) RenderError(err error) error {
	obj := map[string]string{"error": err.Error()}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		obj["code"] = string(code)
	}
	return r.encode(obj)
}

// RenderMessage encodes a message document without its style markup
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": style.Strip(msg)})
}

// RenderSection is a no-op: headings are not part of documents
func (r *Renderer) RenderSection(string) error {
	return nil
}

// Flush writes the TOML or XML values held so far
func (r *Renderer) Flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	pending := r.pending
	r.pending = nil

	if r.kind == TOML {
		if len(pending) == 1 {
			return toml.NewEncoder(r.output).Encode(pending[0])
		}
		return toml.NewEncoder(r.output).Encode(map[string]interface{}{"document": pending})
	}

	if len(pending) == 1 {
		return r.writeXML(element(pending[0]))
	}
	root := etree.NewElement("documents")
	for _, v := range pending {
		root.AddChild(element(v))
	}
	return r.writeXML(root)
}

func (r *Renderer) encode(v interface{}) error {
	if r.kind != YAML {
		r.pending = append(r.pending, v)
		return nil
	}

	if r.written > 0 {
		if _, err := io.WriteString(r.output, "---\n"); err != nil {
			return err
		}
	}
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	r.written++
	return enc.Close()
}

func element(v interface{}) *etree.Element {
	if report, ok := v.(*display.Report); ok {
		return reportElement(report)
	}
	return mapElement(v)
}

func (r *Renderer) writeXML(root *etree.Element) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(root)
	doc.Indent(2)
	_, err := doc.WriteTo(r.output)
	return err
}

func reportElement(report *display.Report) *etree.Element {
	root := etree.NewElement("report")
	root.CreateAttr("command", report.Command)
	root.CreateAttr("dryRun", strconv.FormatBool(report.DryRun))
	root.CreateAttr("timestamp", report.Timestamp.Format(time.RFC3339))
	if report.Modlist != "" {
		root.CreateElement("modlist").SetText(report.Modlist)
	}
	if report.Message != "" {
		root.CreateElement("message").SetText(report.Message)
	}

	mods := root.CreateElement("mods")
	for _, m := range report.Mods {
		el := mods.CreateElement("mod")
		el.CreateAttr("key", m.Key)
		el.CreateAttr("id", m.ID)
		if m.Status != "" {
			el.CreateAttr("status", m.Status)
		}
		if m.Target != "" {
			el.CreateAttr("target", m.Target)
		}
	}
	return root
}

// mapElement turns a flat map into <result><key>value</key>...</result>
func mapElement(v interface{}) *etree.Element {
	root := etree.NewElement("result")
	add := func(k string, val interface{}) {
		root.CreateElement(k).SetText(fmt.Sprintf("%v", val))
	}
	switch m := v.(type) {
	case map[string]string:
		for _, k := range sortedKeys(m) {
			add(k, m[k])
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(k, m[k])
		}
	}
	return root
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
