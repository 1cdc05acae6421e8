package toml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/thirteen37/crudcfg/internal/tree"
)

// renderValue renders a node as a TOML value token. Tables render inline
// here; section-style rendering is the serializer's job.
func renderValue(n tree.Node) string {
	switch n := n.(type) {
	case *tree.Scalar:
		return renderScalar(n)
	case *tree.Array:
		parts := make([]string, 0, n.Len())
		for i := 0; i < n.Len(); i++ {
			parts = append(parts, renderValue(n.At(i)))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *tree.Table:
		parts := make([]string, 0, n.Len())
		for _, k := range n.Keys() {
			v, _ := n.Get(k)
			parts = append(parts, renderKey(k)+" = "+renderValue(v))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

// renderScalar prefers the scalar's original source token; synthesized
// scalars render canonically from their typed value.
func renderScalar(s *tree.Scalar) string {
	if s.Raw() != "" {
		return s.Raw()
	}
	switch s.Kind {
	case tree.KindString:
		return quoteString(s.Value.(string))
	case tree.KindInteger:
		return strconv.FormatInt(s.Value.(int64), 10)
	case tree.KindFloat:
		return renderFloat(s.Value.(float64))
	case tree.KindBool:
		return strconv.FormatBool(s.Value.(bool))
	case tree.KindDatetime:
		return s.Value.(time.Time).Format(time.RFC3339)
	default:
		return quoteString(s.Text())
	}
}

func renderFloat(f float64) string {
	switch {
	case math.IsInf(f, +1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	out := strconv.FormatFloat(f, 'g', -1, 64)
	// TOML floats need a fractional part or exponent.
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}
	return out
}

// quoteString renders s as a TOML basic string.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				b.WriteString(fmt.Sprintf(`\u%04X`, r))
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// renderKey renders a table key, quoting it unless it is a bare key.
func renderKey(k string) string {
	if isBareKey(k) {
		return k
	}
	return quoteString(k)
}

func isBareKey(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// renderKeyPath renders a dotted header path.
func renderKeyPath(parts []string) string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = renderKey(p)
	}
	return strings.Join(out, ".")
}
