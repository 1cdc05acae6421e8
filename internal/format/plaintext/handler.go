// Package plaintext provides a handler for line-based text files. A document
// is an array of lines, so integer paths address individual lines and the
// usual operations insert, replace and remove them.
package plaintext

import (
	"strings"

	"github.com/thirteen37/crudcfg/internal/format"
	"github.com/thirteen37/crudcfg/internal/tree"
)

// Handler implements format.Handler for plaintext files.
type Handler struct{}

// New creates a new plaintext handler.
func New() *Handler {
	return &Handler{}
}

// Name returns the handler's format name.
func (h *Handler) Name() string {
	return "plaintext"
}

// Extensions returns the file extensions handled as plaintext.
func (h *Handler) Extensions() []string {
	return []string{".txt"}
}

// Parse reads a plaintext document. Every input is valid; an empty input is
// an empty document.
func (h *Handler) Parse(data []byte) (format.Document, error) {
	d := &Document{root: tree.NewArray(), trailingNL: true}
	if len(data) == 0 {
		return d, nil
	}

	lines := strings.Split(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		d.trailingNL = false
	}
	for _, line := range lines {
		d.root.Append(tree.NewScalar(tree.KindString, line))
	}
	tree.MarkClean(d.root)
	return d, nil
}

// ParseValue parses a value literal, which for plaintext is the line itself.
func (h *Handler) ParseValue(text string) (tree.Node, error) {
	return tree.NewScalar(tree.KindString, text), nil
}

// Document is a parsed plaintext file.
type Document struct {
	root       *tree.Array
	trailingNL bool
}

// Root returns the document's root array of lines.
func (d *Document) Root() tree.Node {
	return d.root
}

// Serialize renders the whole document.
func (d *Document) Serialize() ([]byte, error) {
	if d.root.Len() == 0 {
		return []byte{}, nil
	}
	lines := make([]string, 0, d.root.Len())
	for i := 0; i < d.root.Len(); i++ {
		lines = append(lines, lineText(d.root.At(i)))
	}
	s := strings.Join(lines, "\n")
	if d.trailingNL {
		s += "\n"
	}
	return []byte(s), nil
}

// Render renders a single node of the document.
func (d *Document) Render(n tree.Node) ([]byte, error) {
	if n == tree.Node(d.root) {
		return d.Serialize()
	}
	if s, ok := n.(*tree.Scalar); ok {
		return []byte(s.Text()), nil
	}
	if a, ok := n.(*tree.Array); ok {
		lines := make([]string, 0, a.Len())
		for i := 0; i < a.Len(); i++ {
			lines = append(lines, lineText(a.At(i)))
		}
		return []byte(strings.Join(lines, "\n")), nil
	}
	return []byte{}, nil
}

func lineText(n tree.Node) string {
	if s, ok := n.(*tree.Scalar); ok {
		return s.Text()
	}
	return ""
}

var (
	_ format.Handler  = (*Handler)(nil)
	_ format.Document = (*Document)(nil)
)
