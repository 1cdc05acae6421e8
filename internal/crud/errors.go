// Package crud implements the core of the tool: resolving a path through a
// document tree and applying a single create/read/update/delete operation to
// the resolved container.
package crud

import (
	"errors"
	"fmt"
)

// Errors returned by path resolution and operation execution. Every failure
// is detected before any mutation is committed.
var (
	// ErrKeyNotFound indicates a table key named by the path or the final
	// key token does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyAlreadyExists indicates a create targeted an existing table key.
	ErrKeyAlreadyExists = errors.New("key already exists")

	// ErrIndexOutOfRange indicates an array index outside the array's bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidIndexSegment indicates a segment applied to an array that is
	// not a valid integer index token.
	ErrInvalidIndexSegment = errors.New("invalid index segment")

	// ErrNotAContainer indicates an attempt to descend into or mutate a
	// scalar as if it were a collection.
	ErrNotAContainer = errors.New("not a container")
)

// opError pairs a category sentinel with a full user-facing message that
// names the offending segment and the last successfully resolved location.
type opError struct {
	sentinel error
	msg      string
}

func (e *opError) Error() string { return e.msg }

func (e *opError) Unwrap() error { return e.sentinel }

func wrapf(sentinel error, format string, args ...any) error {
	return &opError{sentinel: sentinel, msg: fmt.Sprintf(format, args...)}
}
