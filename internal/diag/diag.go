// Package diag provides the diagnostics sink the rest of the tool reports
// through. The sink is passed explicitly; nothing in this module logs via
// package-level state.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Sink receives diagnostic messages. The zero alternative is Discard, so
// callers never need to nil-check.
type Sink interface {
	// Debugf reports a trace message, shown only in verbose mode.
	Debugf(format string, args ...any)
	// Errorf reports a user-facing failure message.
	Errorf(format string, args ...any)
}

// Reporter writes "crudcfg: <level>: <message>" lines to a stream, coloring
// the line by level. Colors are dropped automatically when NO_COLOR is set or
// the stream is not a terminal.
type Reporter struct {
	w       io.Writer
	verbose bool

	debugColor *color.Color
	errorColor *color.Color
}

// NewReporter creates a reporter writing to w. Debug messages are emitted
// only when verbose is set.
func NewReporter(w io.Writer, verbose bool) *Reporter {
	return &Reporter{
		w:          w,
		verbose:    verbose,
		debugColor: color.New(color.FgMagenta),
		errorColor: color.New(color.FgRed, color.Bold),
	}
}

// Debugf implements Sink.
func (r *Reporter) Debugf(format string, args ...any) {
	if !r.verbose {
		return
	}
	r.debugColor.Fprintf(r.w, "crudcfg: debug: %s\n", fmt.Sprintf(format, args...))
}

// Errorf implements Sink.
func (r *Reporter) Errorf(format string, args ...any) {
	r.errorColor.Fprintf(r.w, "crudcfg: error: %s\n", fmt.Sprintf(format, args...))
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Debugf(string, ...any) {}
func (discard) Errorf(string, ...any) {}
