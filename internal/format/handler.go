// Package format provides the interfaces the CRUD core consumes for parsing
// and serializing configuration file formats.
package format

import (
	"fmt"

	"github.com/thirteen37/crudcfg/internal/tree"
)

// Handler is a configuration file format. Handlers are stateless; per-file
// state (original bytes, layout, detected style) lives in the Document a
// Parse call returns.
type Handler interface {
	// Name returns the format's flag name (e.g. "toml").
	Name() string

	// Extensions returns the file extensions the format claims, with dots
	// (e.g. ".toml").
	Extensions() []string

	// Parse reads raw bytes into a document. Syntax failures return a
	// *ParseError.
	Parse(data []byte) (Document, error)

	// ParseValue converts a single command-line token into a value node
	// compatible with the format's type system.
	ParseValue(token string) (tree.Node, error)
}

// Document is one parsed configuration file. The tree returned by Root is
// mutated in place by the CRUD core; Serialize then reproduces the original
// bytes for every region the mutation did not touch.
type Document interface {
	// Root returns the document's root node.
	Root() tree.Node

	// Serialize renders the whole document, style-preserving.
	Serialize() ([]byte, error)

	// Render renders an arbitrary node of the document, as needed for read
	// results. Rendering the root is equivalent to Serialize.
	Render(n tree.Node) ([]byte, error)
}

// ParseError reports that input text is not valid document syntax.
type ParseError struct {
	// Format is the format's display name (e.g. "TOML").
	Format string
	// Err is the underlying parser error; its message usually carries
	// line/column information.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s file invalid: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
