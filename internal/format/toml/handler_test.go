package toml

import (
	"errors"
	"strings"
	"testing"

	"github.com/thirteen37/crudcfg/internal/format"
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

func TestRoundTrip_Unmodified(t *testing.T) {
	inputs := []struct {
		name  string
		input string
	}{
		{"simple", "[project]\nname = \"crudtoml\"\n"},
		{"comments and blanks", "# banner\n\ntitle = \"x\"  # trailing\n\n[a]\n# inner\nb = 1\n"},
		{"nested sections", "[outer]\nk = 1\n[outer.inner]\nv = 2\n"},
		{"array of tables", "[[servers]]\nhost = \"a\"\n\n[[servers]]\nhost = \"b\"\n"},
		{"inline values", "point = {x = 1, y = 2}\ntags = [\"a\", 'b']\n"},
		{"multiline array", "tags = [\n  1,\n  2,\n]\n"},
		{"dotted keys", "a.b.c = 1\na.b.d = 2\n"},
		{"quoted keys", "\"weird key\" = 1\n['literal.key']\nv = 2\n"},
		{"odd spacing kept", "name=\"x\"\nnum   =   3\n"},
		{"no trailing newline", "k = 1"},
		{"empty", ""},
		{"datetime scalars", "dob = 2023-05-23\nts = 1987-07-05T17:45:00Z\n"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			if got := serialized(t, doc); got != tt.input {
				t.Errorf("round trip drift:\n got: %q\nwant: %q", got, tt.input)
			}
		})
	}
}

func TestSerialize_CreateInTable(t *testing.T) {
	doc := mustParse(t, "[project]\nname = \"crudtoml\"\n")
	project, _ := doc.Root().(*tree.Table).Get("project")
	v, err := New().ParseValue("2023-05-23")
	if err != nil {
		t.Fatalf("ParseValue() error = %v", err)
	}
	project.(*tree.Table).Set("dob", v)

	want := "[project]\nname = \"crudtoml\"\ndob = 2023-05-23\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_UpdateInTable(t *testing.T) {
	doc := mustParse(t, "[project]\nname = \"crudtoml\"\n")
	project, _ := doc.Root().(*tree.Table).Get("project")
	v, _ := New().ParseValue(`"crudini"`)
	project.(*tree.Table).Set("name", v)

	want := "[project]\nname = \"crudini\"\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_DeleteFromTable(t *testing.T) {
	doc := mustParse(t, "[project]\nname = \"crudtoml\"\n")
	project, _ := doc.Root().(*tree.Table).Get("project")
	project.(*tree.Table).Delete("name")

	want := "[project]\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_DeletePreservesSiblings(t *testing.T) {
	input := "# head\n[t]\na = 1 # keep me\nb = 2\nc = 3\n"
	doc := mustParse(t, input)
	tbl, _ := doc.Root().(*tree.Table).Get("t")
	tbl.(*tree.Table).Delete("b")

	want := "# head\n[t]\na = 1 # keep me\nc = 3\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_UpdateKeepsTrailingComment(t *testing.T) {
	doc := mustParse(t, "n = 1  # count\n")
	v, _ := New().ParseValue("2")
	doc.Root().(*tree.Table).Set("n", v)

	want := "n = 2  # count\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_NewSectionAppended(t *testing.T) {
	doc := mustParse(t, "[a]\nx = 1\n")
	root := doc.Root().(*tree.Table)
	tool := tree.NewTable()
	lint := tree.NewTable()
	v, _ := New().ParseValue("true")
	lint.Set("strict", v)
	tool.Set("lint", lint)
	root.Set("tool", tool)

	want := "[a]\nx = 1\n[tool.lint]\nstrict = true\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_RootKeyBeforeFirstHeader(t *testing.T) {
	doc := mustParse(t, "title = \"t\"\n\n[a]\nx = 1\n")
	v, _ := New().ParseValue("1")
	doc.Root().(*tree.Table).Set("version", v)

	want := "title = \"t\"\nversion = 1\n\n[a]\nx = 1\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_InlineArrayMutation(t *testing.T) {
	doc := mustParse(t, "tags = [\"a\", \"b\"]\n")
	tags, _ := doc.Root().(*tree.Table).Get("tags")
	v, _ := New().ParseValue(`"c"`)
	tags.(*tree.Array).Append(v)

	want := "tags = [\"a\", \"b\", \"c\"]\n"
	if got := serialized(t, doc); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_ArrayOfTables(t *testing.T) {
	input := "[[servers]]\nhost = \"a\"\n[[servers]]\nhost = \"b\"\n"

	t.Run("delete element drops its block", func(t *testing.T) {
		doc := mustParse(t, input)
		servers, _ := doc.Root().(*tree.Table).Get("servers")
		servers.(*tree.Array).Remove(0)

		want := "[[servers]]\nhost = \"b\"\n"
		if got := serialized(t, doc); got != want {
			t.Errorf("Serialize() = %q, want %q", got, want)
		}
	})

	t.Run("new element appends a block", func(t *testing.T) {
		doc := mustParse(t, input)
		servers, _ := doc.Root().(*tree.Table).Get("servers")
		elem := tree.NewTable()
		v, _ := New().ParseValue(`"c"`)
		elem.Set("host", v)
		servers.(*tree.Array).Append(elem)

		want := input + "[[servers]]\nhost = \"c\"\n"
		if got := serialized(t, doc); got != want {
			t.Errorf("Serialize() = %q, want %q", got, want)
		}
	})
}

func TestRender_Scalar(t *testing.T) {
	doc := mustParse(t, "[project]\nname = \"crudtoml\"\n")
	project, _ := doc.Root().(*tree.Table).Get("project")
	name, _ := project.(*tree.Table).Get("name")

	out, err := doc.Render(name)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(out) != `"crudtoml"` {
		t.Errorf("Render() = %q, want %q", out, `"crudtoml"`)
	}
}

func TestRender_Table(t *testing.T) {
	doc := mustParse(t, "[project]\nname = \"crudtoml\"\ndob = 2023-05-23\n")
	project, _ := doc.Root().(*tree.Table).Get("project")

	out, err := doc.Render(project)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "name = \"crudtoml\"\ndob = 2023-05-23\n"
	if string(out) != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := New().Parse([]byte("[unclosed\n"))
	if err == nil {
		t.Fatal("Parse() accepted invalid TOML")
	}
	var perr *format.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error type = %T, want *format.ParseError", err)
	}
	if perr.Format != "TOML" {
		t.Errorf("ParseError.Format = %q, want TOML", perr.Format)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string // rendered form
		wantErr bool
	}{
		{"string", `"crudini"`, `"crudini"`, false},
		{"date", "2023-05-23", "2023-05-23", false},
		{"integer", "42", "42", false},
		{"inline table", "{x = 1}", "{x = 1}", false},
		{"array", `[1, 2]`, "[1, 2]", false},
		{"bare word rejected", "hello", "", true},
		{"unterminated string rejected", `"oops`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New().ParseValue(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseValue(%q) accepted invalid value", tt.token)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseValue(%q) error = %v", tt.token, err)
			}
			if got := renderValue(n); got != tt.want {
				t.Errorf("renderValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseValue_OrderedInlineTable(t *testing.T) {
	n, err := New().ParseValue("{zebra = 1, apple = 2, mango = 3}")
	if err != nil {
		t.Fatalf("ParseValue() error = %v", err)
	}
	got := n.(*tree.Table).Keys()
	want := []string{"zebra", "apple", "mango"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v (order not preserved)", got, want)
		}
	}
}

func TestScan_Helpers(t *testing.T) {
	t.Run("equal inside string ignored", func(t *testing.T) {
		if got := findUnquotedEqual(`"a=b" = 1`); got != 6 {
			t.Errorf("findUnquotedEqual = %d, want 6", got)
		}
	})
	t.Run("hash inside string ignored", func(t *testing.T) {
		if got := commentIndex(`k = "#nope" # yes`); got != strings.Index(`k = "#nope" # yes`, "# yes") {
			t.Errorf("commentIndex = %d", got)
		}
	})
	t.Run("dotted quoted key", func(t *testing.T) {
		parts, err := parseKeyParts(`a."b.c".d`)
		if err != nil {
			t.Fatalf("parseKeyParts() error = %v", err)
		}
		want := []string{"a", "b.c", "d"}
		if len(parts) != 3 || parts[0] != want[0] || parts[1] != want[1] || parts[2] != want[2] {
			t.Errorf("parseKeyParts = %v, want %v", parts, want)
		}
	})
}
