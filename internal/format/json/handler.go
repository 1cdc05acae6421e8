// Package json provides the JSON document handler. JSON carries no comments
// so serialization is a clean re-render, keeping the source's indentation
// style and trailing-newline convention.
package json

import (
	"strings"

	"github.com/thirteen37/crudcfg/internal/format"
	"github.com/thirteen37/crudcfg/internal/tree"
)

// Handler implements format.Handler for JSON files.
type Handler struct{}

// New creates a new JSON handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the handler's format name.
func (h *Handler) Name() string {
	return "json"
}

// Extensions returns the file extensions handled as JSON.
func (h *Handler) Extensions() []string {
	return []string{".json"}
}

// Parse reads a JSON document.
func (h *Handler) Parse(data []byte) (format.Document, error) {
	root, err := decodeDocument(data)
	if err != nil {
		return nil, &format.ParseError{Format: "JSON", Err: err}
	}
	tree.MarkClean(root)
	return &Document{
		root:       root,
		indent:     detectIndent(data),
		trailingNL: len(data) > 0 && data[len(data)-1] == '\n',
	}, nil
}

// ParseValue parses a single JSON value literal.
func (h *Handler) ParseValue(text string) (tree.Node, error) {
	n, err := decodeDocument([]byte(text))
	if err != nil {
		return nil, &format.ParseError{Format: "JSON", Err: err}
	}
	return n, nil
}

// Document is a parsed JSON file.
type Document struct {
	root       tree.Node
	indent     string
	trailingNL bool
}

// Root returns the document's root node.
func (d *Document) Root() tree.Node {
	return d.root
}

// Serialize renders the whole document.
func (d *Document) Serialize() ([]byte, error) {
	var b strings.Builder
	renderNode(&b, d.root, d.indent, 0)
	if d.trailingNL {
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

// Render renders a single node of the document.
func (d *Document) Render(n tree.Node) ([]byte, error) {
	if n == d.root {
		return d.Serialize()
	}
	var b strings.Builder
	renderNode(&b, n, d.indent, 0)
	return []byte(b.String()), nil
}

var (
	_ format.Handler  = (*Handler)(nil)
	_ format.Document = (*Document)(nil)
)
