// Package path provides path selector abstractions for navigating document trees.
package path

import (
	"encoding/json"
	"fmt"
)

// Path represents a selector naming the route from the document root to a
// target container. A path may be empty, which addresses the root itself.
type Path interface {
	// Segments returns the path as a slice of string segments. Each segment
	// is interpreted as a table key or an array index depending on the node
	// it is applied to.
	Segments() []string

	// String returns a canonical string representation.
	String() string
}

// ArrayPath is a path specified as an array of string segments.
// Example: ["project", "authors", "0"]
type ArrayPath struct {
	segments []string
}

// NewArrayPath creates a new ArrayPath from string segments.
func NewArrayPath(segments []string) *ArrayPath {
	return &ArrayPath{segments: segments}
}

// ParseArrayPath parses a JSON array string into an ArrayPath.
// Example input: `["project", "authors", "0"]`
func ParseArrayPath(s string) (*ArrayPath, error) {
	var segments []string
	if err := json.Unmarshal([]byte(s), &segments); err != nil {
		return nil, fmt.Errorf("invalid path array: %w", err)
	}
	return &ArrayPath{segments: segments}, nil
}

// Segments returns the path segments.
func (p *ArrayPath) Segments() []string {
	return p.segments
}

// String returns the path as a JSON array string.
func (p *ArrayPath) String() string {
	data, _ := json.Marshal(p.segments)
	return string(data)
}
