package toml

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/thirteen37/crudcfg/internal/tree"
)

// decodeValue decodes a single TOML value token (possibly spanning lines)
// into a tree node. The token is wrapped into a one-key document so the toml
// library does the actual lexing and typing.
func decodeValue(text string) (tree.Node, error) {
	var m map[string]any
	meta, err := toml.Decode("v = "+text+"\n", &m)
	if err != nil {
		return nil, err
	}
	return fromDecoded(m["v"], meta, []string{"v"}), nil
}

// fromDecoded converts a decoded Go value into a tree node, using document
// metadata to preserve inline-table key order.
func fromDecoded(v any, meta toml.MetaData, prefix []string) tree.Node {
	switch val := v.(type) {
	case map[string]any:
		t := tree.NewInlineTable()
		for _, k := range keysInOrder(meta, prefix, val) {
			t.Set(k, fromDecoded(val[k], meta, append(prefix, k)))
		}
		return t
	case []map[string]any:
		arr := tree.NewArray()
		for _, e := range val {
			arr.Append(fromDecoded(e, meta, prefix))
		}
		return arr
	case []any:
		arr := tree.NewArray()
		for _, e := range val {
			arr.Append(fromDecoded(e, meta, prefix))
		}
		return arr
	default:
		return scalarFromGo(val)
	}
}

func scalarFromGo(v any) *tree.Scalar {
	switch val := v.(type) {
	case string:
		return tree.NewScalar(tree.KindString, val)
	case int64:
		return tree.NewScalar(tree.KindInteger, val)
	case float64:
		return tree.NewScalar(tree.KindFloat, val)
	case bool:
		return tree.NewScalar(tree.KindBool, val)
	case time.Time:
		return tree.NewScalar(tree.KindDatetime, val)
	default:
		return tree.NewScalar(tree.KindString, fmt.Sprintf("%v", val))
	}
}

// keysInOrder returns the map's keys in document order using decode metadata.
func keysInOrder(meta toml.MetaData, prefix []string, m map[string]any) []string {
	needed := make(map[string]bool, len(m))
	for k := range m {
		needed[k] = true
	}

	var ordered []string
	seen := make(map[string]bool, len(m))
	for _, key := range meta.Keys() {
		if len(key) != len(prefix)+1 || !matchesPrefix(key, prefix) {
			continue
		}
		k := key[len(prefix)]
		if needed[k] && !seen[k] {
			ordered = append(ordered, k)
			seen[k] = true
		}
	}

	// Keys the metadata missed still have to appear somewhere.
	for k := range needed {
		if !seen[k] {
			ordered = append(ordered, k)
		}
	}
	return ordered
}

func matchesPrefix(key toml.Key, prefix []string) bool {
	if len(key) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if key[i] != p {
			return false
		}
	}
	return true
}
