// Package rawfmt flattens document nodes into shell-consumable text. The
// output is lossy by design and never fed back into a parser.
package rawfmt

import (
	"strings"

	"github.com/alessio/shellescape"
	"github.com/thirteen37/crudcfg/internal/tree"
)

// Format renders n for shell consumption: tables become key=value lines
// with both sides shell-quoted, arrays one line per element, scalars a
// shell-quoted token.
func Format(n tree.Node) string {
	switch v := n.(type) {
	case *tree.Table:
		lines := make([]string, 0, v.Len())
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			lines = append(lines, shellescape.Quote(k)+"="+Format(val))
		}
		return strings.Join(lines, "\n")
	case *tree.Array:
		lines := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			lines = append(lines, Format(v.At(i)))
		}
		return strings.Join(lines, "\n")
	case *tree.Scalar:
		return shellescape.Quote(v.Text())
	}
	return ""
}
