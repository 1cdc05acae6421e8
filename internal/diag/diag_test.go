package diag

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestReporter(t *testing.T) {
	color.NoColor = true

	t.Run("debug suppressed unless verbose", func(t *testing.T) {
		var b strings.Builder
		NewReporter(&b, false).Debugf("resolving '%s'", "project")
		if b.Len() != 0 {
			t.Errorf("quiet reporter wrote %q", b.String())
		}
	})

	t.Run("debug shown in verbose mode", func(t *testing.T) {
		var b strings.Builder
		NewReporter(&b, true).Debugf("resolving '%s'", "project")
		want := "crudcfg: debug: resolving 'project'\n"
		if b.String() != want {
			t.Errorf("got %q, want %q", b.String(), want)
		}
	})

	t.Run("errors always shown", func(t *testing.T) {
		var b strings.Builder
		NewReporter(&b, false).Errorf("cannot find '%s' in %s", "x", "the document root")
		want := "crudcfg: error: cannot find 'x' in the document root\n"
		if b.String() != want {
			t.Errorf("got %q, want %q", b.String(), want)
		}
	})
}
