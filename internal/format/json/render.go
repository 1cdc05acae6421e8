package json

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/thirteen37/crudcfg/internal/tree"
)

// renderNode writes n as indented JSON. depth is the current nesting level.
func renderNode(b *strings.Builder, n tree.Node, indent string, depth int) {
	switch v := n.(type) {
	case *tree.Table:
		if v.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		keys := v.Keys()
		for i, k := range keys {
			b.WriteString(strings.Repeat(indent, depth+1))
			b.WriteString(quote(k))
			b.WriteString(": ")
			val, _ := v.Get(k)
			renderNode(b, val, indent, depth+1)
			if i < len(keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteByte('}')
	case *tree.Array:
		if v.Len() == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i := 0; i < v.Len(); i++ {
			b.WriteString(strings.Repeat(indent, depth+1))
			renderNode(b, v.At(i), indent, depth+1)
			if i < v.Len()-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteByte(']')
	case *tree.Scalar:
		b.WriteString(renderScalar(v))
	}
}

func renderScalar(s *tree.Scalar) string {
	switch s.Kind {
	case tree.KindString:
		return quote(s.Value.(string))
	case tree.KindInteger, tree.KindFloat:
		if s.Raw() != "" {
			return s.Raw()
		}
		if s.Kind == tree.KindInteger {
			return strconv.FormatInt(s.Value.(int64), 10)
		}
		return strconv.FormatFloat(s.Value.(float64), 'g', -1, 64)
	case tree.KindBool:
		return strconv.FormatBool(s.Value.(bool))
	case tree.KindNil:
		return "null"
	default:
		// Kinds JSON has no literal for, like datetimes, render as strings.
		return quote(s.Text())
	}
}

func quote(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(out)
}
