package crud

import (
	"strconv"

	"github.com/thirteen37/crudcfg/internal/diag"
	"github.com/thirteen37/crudcfg/internal/path"
	"github.com/thirteen37/crudcfg/internal/tree"
)

// RootLocation describes the document root in error messages, before any
// segment has been resolved.
const RootLocation = "the document root"

// Resolution is the outcome of resolving a path: the node at the target
// location and a human-readable description of it, used in error messages by
// the operation that follows.
type Resolution struct {
	Node     tree.Node
	Location string
}

// Resolve walks root through the path's segments and returns the node at
// that location. An empty path resolves to root itself.
//
// Segments are dispatched on the kind of the node they apply to: array nodes
// take non-negative integer indices, table nodes take keys, and scalars end
// resolution with an error. When create is set, a missing table key inserts
// a new empty table and descends into it, and an out-of-bounds array index
// appends a new empty table at the end regardless of the requested position.
//
// Creation only ever happens past the deepest pre-existing node, and a
// failure can only be raised while still walking pre-existing nodes, so a
// failed resolution never leaves the tree mutated.
func Resolve(root tree.Node, p path.Path, create bool, sink diag.Sink) (Resolution, error) {
	if sink == nil {
		sink = diag.Discard
	}

	loc := RootLocation
	cur := root
	for _, seg := range p.Segments() {
		sink.Debugf("resolving '%s'", seg)
		switch n := cur.(type) {
		case *tree.Array:
			sink.Debugf("resolving '%s' as an index", seg)
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 {
				return Resolution{}, wrapf(ErrInvalidIndexSegment,
					"cannot interpret '%s' as an integer index into %s", seg, loc)
			}
			if idx < n.Len() {
				cur = n.At(idx)
			} else if create {
				next := tree.NewTable()
				n.Append(next)
				cur = next
			} else {
				return Resolution{}, wrapf(ErrIndexOutOfRange,
					"'%s' is not a valid index into %s (length %d)", seg, loc, n.Len())
			}
		case *tree.Table:
			if child, ok := n.Get(seg); ok {
				cur = child
			} else if create {
				sink.Debugf("creating table for '%s'", seg)
				next := tree.NewTable()
				n.Set(seg, next)
				cur = next
			} else {
				return Resolution{}, wrapf(ErrKeyNotFound,
					"cannot find '%s' in %s", seg, loc)
			}
		case *tree.Scalar:
			return Resolution{}, wrapf(ErrNotAContainer,
				"cannot find '%s' in %s as it is not a collection", seg, loc)
		}
		loc = "'" + seg + "'"
	}
	return Resolution{Node: cur, Location: loc}, nil
}
