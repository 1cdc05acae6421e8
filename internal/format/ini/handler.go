// Package ini provides the INI document handler, backed by gopkg.in/ini.v1.
// A document is a table of sections, each a table of string values; keys
// before any section header live under the section name "". The parsed
// ini.File is kept and reconciled on serialize so comments survive edits.
package ini

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/thirteen37/crudcfg/internal/format"
	"github.com/thirteen37/crudcfg/internal/tree"
	"gopkg.in/ini.v1"
)

// Handler implements format.Handler for INI files.
type Handler struct{}

// New creates a new INI handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the handler's format name.
func (h *Handler) Name() string {
	return "ini"
}

// Extensions returns the file extensions handled as INI.
func (h *Handler) Extensions() []string {
	return []string{".ini", ".cfg", ".conf"}
}

// Parse reads an INI document.
func (h *Handler) Parse(data []byte) (format.Document, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, &format.ParseError{Format: "INI", Err: err}
	}

	root := tree.NewTable()
	for _, sec := range cfg.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			name = ""
		}
		if name == "" && len(sec.Keys()) == 0 {
			continue
		}
		st := tree.NewTable()
		for _, key := range sec.Keys() {
			st.Set(key.Name(), tree.NewScalar(tree.KindString, key.Value()))
		}
		root.Set(name, st)
	}
	tree.MarkClean(root)

	return &Document{cfg: cfg, root: root}, nil
}

// ParseValue parses a value literal. INI values are plain strings, so the
// text is taken verbatim.
func (h *Handler) ParseValue(text string) (tree.Node, error) {
	return tree.NewScalar(tree.KindString, text), nil
}

// Document is a parsed INI file.
type Document struct {
	cfg  *ini.File
	root *tree.Table
}

// Root returns the document's root table.
func (d *Document) Root() tree.Node {
	return d.root
}

// Serialize renders the whole document. The original ini.File is brought in
// line with the tree, so sections and keys that were not touched keep their
// comments.
func (d *Document) Serialize() ([]byte, error) {
	for _, name := range d.root.Keys() {
		v, _ := d.root.Get(name)
		st, ok := v.(*tree.Table)
		if !ok {
			return nil, fmt.Errorf("INI section %q is not a table", name)
		}
		sec, err := d.cfg.NewSection(iniName(name))
		if err != nil {
			return nil, fmt.Errorf("cannot create INI section %q: %w", name, err)
		}
		for _, k := range st.Keys() {
			val, _ := st.Get(k)
			s, err := valueText(name, k, val)
			if err != nil {
				return nil, err
			}
			key, err := sec.NewKey(k, s)
			if err != nil {
				return nil, fmt.Errorf("cannot create INI key %q: %w", k, err)
			}
			key.SetValue(s)
		}
		for _, k := range sec.KeyStrings() {
			if !st.Has(k) {
				sec.DeleteKey(k)
			}
		}
	}
	for _, sec := range d.cfg.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection {
			if !d.root.Has("") && len(sec.Keys()) > 0 {
				d.cfg.DeleteSection(name)
			}
			continue
		}
		if !d.root.Has(name) {
			d.cfg.DeleteSection(name)
		}
	}

	var buf bytes.Buffer
	if _, err := d.cfg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("cannot serialize INI: %w", err)
	}
	return buf.Bytes(), nil
}

// Render renders a single node of the document.
func (d *Document) Render(n tree.Node) ([]byte, error) {
	if n == tree.Node(d.root) {
		return d.Serialize()
	}
	switch v := n.(type) {
	case *tree.Scalar:
		return []byte(v.Text()), nil
	case *tree.Table:
		var b strings.Builder
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			s, ok := val.(*tree.Scalar)
			if !ok {
				return nil, fmt.Errorf("INI key %q does not hold a scalar", k)
			}
			b.WriteString(k)
			b.WriteString(" = ")
			b.WriteString(s.Text())
			b.WriteByte('\n')
		}
		return []byte(b.String()), nil
	}
	return nil, fmt.Errorf("INI cannot render this value")
}

// iniName maps the tree's global-section name to ini.v1's.
func iniName(name string) string {
	if name == "" {
		return ini.DefaultSection
	}
	return name
}

func valueText(section, key string, n tree.Node) (string, error) {
	s, ok := n.(*tree.Scalar)
	if !ok {
		return "", fmt.Errorf("INI key %q in section %q must hold a scalar", key, section)
	}
	return s.Text(), nil
}

var (
	_ format.Handler  = (*Handler)(nil)
	_ format.Document = (*Document)(nil)
)
