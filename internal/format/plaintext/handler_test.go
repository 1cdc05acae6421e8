package plaintext

import (
	"testing"

	"github.com/thirteen37/crudcfg/internal/tree"
)

func mustParse(t *testing.T, input string) *Document {
	t.Helper()
	doc, err := New().Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc.(*Document)
}

func serialized(t *testing.T, d *Document) string {
	t.Helper()
	out, err := d.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	return string(out)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"single line", "hello\n"},
		{"no trailing newline", "hello"},
		{"blank lines kept", "a\n\nb\n"},
		{"trailing blank line", "a\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			if got := serialized(t, doc); got != tt.input {
				t.Errorf("round trip drift: got %q, want %q", got, tt.input)
			}
		})
	}
}

func TestParse_Lines(t *testing.T) {
	doc := mustParse(t, "one\ntwo\nthree\n")
	root := doc.Root().(*tree.Array)
	if root.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", root.Len())
	}
	if got := root.At(1).(*tree.Scalar).Text(); got != "two" {
		t.Errorf("line 1 = %q, want two", got)
	}
}

func TestSerialize_Mutations(t *testing.T) {
	doc := mustParse(t, "one\ntwo\nthree\n")
	root := doc.Root().(*tree.Array)

	v, _ := New().ParseValue("TWO")
	root.Set(1, v)
	root.Remove(2)
	more, _ := New().ParseValue("four")
	root.Append(more)

	want := "one\nTWO\nfour\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	doc := mustParse(t, "one\ntwo\n")
	root := doc.Root().(*tree.Array)

	out, err := doc.Render(root.At(0))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(out) != "one" {
		t.Errorf("Render(line) = %q, want one", out)
	}
}
