package rawfmt

import (
	"testing"

	"github.com/thirteen37/crudcfg/internal/tree"
)

func keyedTable(key, value string) *tree.Table {
	t := tree.NewTable()
	t.Set(key, tree.NewScalar(tree.KindString, value))
	return t
}

func TestFormat(t *testing.T) {
	table := tree.NewTable()
	table.Set("name", tree.NewScalar(tree.KindString, "crudtoml"))
	table.Set("greeting", tree.NewScalar(tree.KindString, "hello world"))
	table.Set("count", tree.NewScalar(tree.KindInteger, int64(3)))

	arr := tree.NewArray(
		tree.NewScalar(tree.KindString, "plain"),
		tree.NewScalar(tree.KindString, "two words"),
	)

	tests := []struct {
		name string
		node tree.Node
		want string
	}{
		{"safe scalar unquoted", tree.NewScalar(tree.KindString, "simple"), "simple"},
		{"whitespace quoted", tree.NewScalar(tree.KindString, "a b"), "'a b'"},
		{"metacharacters quoted", tree.NewScalar(tree.KindString, "$HOME;rm"), `'$HOME;rm'`},
		{"integer", tree.NewScalar(tree.KindInteger, int64(42)), "42"},
		{"bool", tree.NewScalar(tree.KindBool, true), "true"},
		{"table order kept", table, "name=crudtoml\ngreeting='hello world'\ncount=3"},
		{"array lines", arr, "plain\n'two words'"},
		{"unsafe key quoted", keyedTable("my key", "v"), "'my key'=v"},
		{"metacharacter key quoted", keyedTable("a;b", "v"), "'a;b'=v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.node); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_Nested(t *testing.T) {
	inner := tree.NewTable()
	inner.Set("x", tree.NewScalar(tree.KindInteger, int64(1)))
	outer := tree.NewTable()
	outer.Set("point", inner)
	outer.Set("tags", tree.NewArray(tree.NewScalar(tree.KindString, "a")))

	want := "point=x=1\ntags=a"
	if got := Format(outer); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
