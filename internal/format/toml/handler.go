// Package toml provides the style-preserving TOML handler.
//
// Parsing keeps two views of the file: the logical tree the CRUD core
// operates on, and a line-level layout. Serialization replays the layout,
// reusing original bytes wherever the tree still matches, so a document that
// was parsed and never modified round-trips exactly.
package toml

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/thirteen37/crudcfg/internal/format"
	"github.com/thirteen37/crudcfg/internal/tree"
)

// Handler implements format.Handler for TOML files.
type Handler struct{}

// New creates a new TOML handler.
func New() *Handler {
	return &Handler{}
}

// Name returns "toml".
func (*Handler) Name() string { return "toml" }

// Extensions returns the extensions handled as TOML.
func (*Handler) Extensions() []string { return []string{".toml", ".tml"} }

// Parse reads TOML bytes into a style-preserving document.
func (h *Handler) Parse(data []byte) (format.Document, error) {
	// Validate with the toml library first: it produces precise
	// line/column messages for real syntax errors, and documents it
	// accepts are well-formed input for the layout scanner.
	var probe map[string]any
	if _, err := toml.Decode(string(data), &probe); err != nil {
		return nil, &format.ParseError{Format: "TOML", Err: err}
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, &format.ParseError{Format: "TOML", Err: err}
	}
	return doc, nil
}

// ParseValue converts a command-line token into a typed value node. The
// token must be a valid TOML value; a bare word is an error, not a string.
func (h *Handler) ParseValue(token string) (tree.Node, error) {
	n, err := decodeValue(token)
	if err != nil {
		return nil, fmt.Errorf("invalid TOML value %q: %w", token, err)
	}
	if s, ok := n.(*tree.Scalar); ok {
		n = tree.NewScalarRaw(s.Kind, s.Value, strings.TrimSpace(token))
	}
	return n, nil
}

var _ format.Handler = (*Handler)(nil)
