package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry maps format names and file extensions to handlers.
type Registry struct {
	byName []Handler
}

// NewRegistry creates a registry over the given handlers. Registration order
// breaks extension ties.
func NewRegistry(handlers ...Handler) *Registry {
	return &Registry{byName: handlers}
}

// ByName returns the handler registered under name.
func (r *Registry) ByName(name string) (Handler, error) {
	name = strings.ToLower(name)
	for _, h := range r.byName {
		if h.Name() == name {
			return h, nil
		}
	}
	return nil, fmt.Errorf("unknown format %q (available: %s)", name, strings.Join(r.Names(), ", "))
}

// ByPath returns the handler whose extension matches the file name, or nil
// if no handler claims it.
func (r *Registry) ByPath(path string) Handler {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil
	}
	for _, h := range r.byName {
		for _, e := range h.Extensions() {
			if e == ext {
				return h
			}
		}
	}
	return nil
}

// Names lists the registered format names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for _, h := range r.byName {
		out = append(out, h.Name())
	}
	return out
}
