package crud

import (
	"strconv"

	"github.com/thirteen37/crudcfg/internal/tree"
)

const (
	// OpCreate inserts a new table entry or array element.
	OpCreate Kind = "create"
	// OpRead returns the resolved node itself; no final key is consulted.
	OpRead Kind = "read"
	// OpUpdate overwrites an existing table entry or array element.
	OpUpdate Kind = "update"
	// OpDelete removes an existing table entry or array element.
	OpDelete Kind = "delete"
)

// Kind is the kind of a CRUD operation.
type Kind string

// Op describes one operation to apply at a resolved location. Key is the
// final key/index token (unused for read); Value is the parsed value literal
// (create and update only).
type Op struct {
	Kind  Kind
	Key   string
	Value tree.Node
}

// Execute applies op at the resolved container and returns the node to be
// rendered: the container itself for read, the whole root document for
// mutating operations. All validation happens before any mutation, so a
// non-nil error guarantees the tree is unchanged.
func Execute(root tree.Node, res Resolution, op Op) (tree.Node, error) {
	if op.Kind == OpRead {
		return res.Node, nil
	}

	switch c := res.Node.(type) {
	case *tree.Table:
		switch op.Kind {
		case OpCreate:
			if c.Has(op.Key) {
				return nil, wrapf(ErrKeyAlreadyExists,
					"key '%s' already exists in %s", op.Key, res.Location)
			}
			c.Set(op.Key, op.Value)
		case OpUpdate:
			if !c.Has(op.Key) {
				return nil, wrapf(ErrKeyNotFound,
					"key '%s' does not exist in %s", op.Key, res.Location)
			}
			c.Set(op.Key, op.Value)
		case OpDelete:
			if !c.Delete(op.Key) {
				return nil, wrapf(ErrKeyNotFound,
					"key '%s' does not exist in %s", op.Key, res.Location)
			}
		}
		return root, nil

	case *tree.Array:
		idx, err := strconv.Atoi(op.Key)
		if err != nil {
			return nil, wrapf(ErrInvalidIndexSegment,
				"cannot interpret key '%s' as an integer index into %s", op.Key, res.Location)
		}
		switch op.Kind {
		case OpCreate:
			// In bounds overwrites; index exactly at the end appends. Any
			// other index is out of range, matching update semantics rather
			// than a plain append.
			switch {
			case idx >= 0 && idx < c.Len():
				c.Set(idx, op.Value)
			case idx == c.Len():
				c.Append(op.Value)
			default:
				return nil, indexError(op.Key, res.Location, c.Len())
			}
		case OpUpdate:
			if idx < 0 || idx >= c.Len() {
				return nil, indexError(op.Key, res.Location, c.Len())
			}
			c.Set(idx, op.Value)
		case OpDelete:
			if idx < 0 || idx >= c.Len() {
				return nil, indexError(op.Key, res.Location, c.Len())
			}
			c.Remove(idx)
		}
		return root, nil

	default:
		return nil, wrapf(ErrNotAContainer,
			"cannot access key '%s' on %s as it is not a collection", op.Key, res.Location)
	}
}

func indexError(key, loc string, length int) error {
	return wrapf(ErrIndexOutOfRange,
		"key '%s' is not a valid index into %s (length %d)", key, loc, length)
}
