// Package tree defines the document tree that CRUD operations act on.
//
// A document is a tree of exactly three node kinds: Table (ordered mapping),
// Array (ordered sequence) and Scalar (opaque leaf). Branching on node kind
// is always a type switch over these three, so every dispatch site covers
// the full set.
package tree

import (
	"fmt"
	"strconv"
	"time"

	"github.com/iancoleman/orderedmap"
)

// Node is a node in a document tree: *Table, *Array or *Scalar.
type Node interface {
	node()
}

// Table is an ordered mapping from string keys to child nodes. Key order is
// insertion order, which for parsed documents is document order.
type Table struct {
	om *orderedmap.OrderedMap

	// Inline tables render as {k = v, ...} on one line; section tables
	// render as [header] blocks.
	Inline bool

	dirty bool
}

// NewTable creates an empty section table.
func NewTable() *Table {
	return &Table{om: orderedmap.New()}
}

// NewInlineTable creates an empty inline table.
func NewInlineTable() *Table {
	return &Table{om: orderedmap.New(), Inline: true}
}

func (*Table) node() {}

// Get returns the child under key.
func (t *Table) Get(key string) (Node, bool) {
	v, ok := t.om.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Node), true
}

// Has reports whether key exists.
func (t *Table) Has(key string) bool {
	_, ok := t.om.Get(key)
	return ok
}

// Set inserts or overwrites the child under key and marks the table dirty.
func (t *Table) Set(key string, v Node) {
	t.om.Set(key, v)
	t.dirty = true
}

// Delete removes key, reporting whether it was present.
func (t *Table) Delete(key string) bool {
	if !t.Has(key) {
		return false
	}
	t.om.Delete(key)
	t.dirty = true
	return true
}

// Keys returns the keys in table order.
func (t *Table) Keys() []string {
	return t.om.Keys()
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.om.Keys())
}

// Array is an ordered, 0-indexed sequence of child nodes.
type Array struct {
	elems []Node
	dirty bool
}

// NewArray creates an array with the given elements.
func NewArray(elems ...Node) *Array {
	return &Array{elems: elems}
}

func (*Array) node() {}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.elems)
}

// At returns the element at index i. The index must be in bounds.
func (a *Array) At(i int) Node {
	return a.elems[i]
}

// Set overwrites the element at index i and marks the array dirty. The index
// must be in bounds.
func (a *Array) Set(i int, v Node) {
	a.elems[i] = v
	a.dirty = true
}

// Append adds v as the new last element.
func (a *Array) Append(v Node) {
	a.elems = append(a.elems, v)
	a.dirty = true
}

// Remove deletes the element at index i, shifting later elements down. The
// index must be in bounds.
func (a *Array) Remove(i int) {
	a.elems = append(a.elems[:i], a.elems[i+1:]...)
	a.dirty = true
}

// ScalarKind identifies the value type of a Scalar leaf.
type ScalarKind uint8

const (
	KindString ScalarKind = iota
	KindInteger
	KindFloat
	KindBool
	KindDatetime
	KindNil
)

// Scalar is an opaque leaf value. Scalars are immutable: mutation replaces
// the node rather than editing it, so node identity tracks change.
type Scalar struct {
	Kind  ScalarKind
	Value any

	// raw is the source token the scalar was parsed from (from document
	// text or a command-line literal). Empty for synthesized values.
	raw string
}

// NewScalar creates a scalar with no source token.
func NewScalar(kind ScalarKind, value any) *Scalar {
	return &Scalar{Kind: kind, Value: value}
}

// NewScalarRaw creates a scalar that remembers its source token. The token is
// reused verbatim when the scalar is rendered back into a document.
func NewScalarRaw(kind ScalarKind, value any, raw string) *Scalar {
	return &Scalar{Kind: kind, Value: value, raw: raw}
}

func (*Scalar) node() {}

// Raw returns the source token, or "" if the scalar was synthesized.
func (s *Scalar) Raw() string {
	return s.raw
}

// Text returns the plain (unquoted) string form of the scalar, as shown to
// shell consumers in raw output mode.
func (s *Scalar) Text() string {
	if s.Kind == KindString {
		return s.Value.(string)
	}
	if s.raw != "" {
		return s.raw
	}
	switch v := s.Value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// MarkClean recursively clears mutation tracking on n and everything beneath
// it. Parsers call this once construction is finished, so that Dirty reflects
// only post-parse edits.
func MarkClean(n Node) {
	switch n := n.(type) {
	case *Table:
		n.dirty = false
		for _, k := range n.Keys() {
			child, _ := n.Get(k)
			MarkClean(child)
		}
	case *Array:
		n.dirty = false
		for i := 0; i < n.Len(); i++ {
			MarkClean(n.At(i))
		}
	}
}

// Dirty reports whether n or any node beneath it has been mutated since
// parsing. Serializers use this to decide between reusing original document
// bytes and re-rendering.
func Dirty(n Node) bool {
	switch n := n.(type) {
	case *Table:
		if n.dirty {
			return true
		}
		for _, k := range n.Keys() {
			child, _ := n.Get(k)
			if Dirty(child) {
				return true
			}
		}
		return false
	case *Array:
		if n.dirty {
			return true
		}
		for i := 0; i < n.Len(); i++ {
			if Dirty(n.At(i)) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
