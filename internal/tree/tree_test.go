package tree

import "testing"

func TestTable_OrderPreserved(t *testing.T) {
	tbl := NewTable()
	tbl.Set("zebra", NewScalar(KindString, "z"))
	tbl.Set("apple", NewScalar(KindString, "a"))
	tbl.Set("mango", NewScalar(KindString, "m"))

	want := []string{"zebra", "apple", "mango"}
	got := tbl.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTable_Delete(t *testing.T) {
	tbl := NewTable()
	tbl.Set("a", NewScalar(KindInteger, int64(1)))
	tbl.Set("b", NewScalar(KindInteger, int64(2)))

	if !tbl.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if tbl.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if tbl.Has("a") {
		t.Error("table still has deleted key")
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestArray_RemoveShiftsDown(t *testing.T) {
	arr := NewArray(
		NewScalar(KindInteger, int64(1)),
		NewScalar(KindInteger, int64(2)),
		NewScalar(KindInteger, int64(3)),
	)
	arr.Remove(1)

	if arr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", arr.Len())
	}
	if got := arr.At(1).(*Scalar).Value; got != int64(3) {
		t.Errorf("At(1) = %v, want 3", got)
	}
}

func TestDirty(t *testing.T) {
	inner := NewTable()
	inner.Set("k", NewScalar(KindString, "v"))
	root := NewTable()
	root.Set("inner", inner)
	MarkClean(root)

	if Dirty(root) {
		t.Fatal("clean tree reported dirty")
	}
	inner.Set("k", NewScalar(KindString, "w"))
	if !Dirty(root) {
		t.Error("mutation in subtree not reported by Dirty at root")
	}
}

func TestScalar_Text(t *testing.T) {
	tests := []struct {
		name string
		s    *Scalar
		want string
	}{
		{"string uses decoded value", NewScalarRaw(KindString, "a b", `"a b"`), "a b"},
		{"raw token wins for non-strings", NewScalarRaw(KindDatetime, nil, "2023-05-23"), "2023-05-23"},
		{"bool", NewScalar(KindBool, true), "true"},
		{"integer", NewScalar(KindInteger, int64(42)), "42"},
		{"float", NewScalar(KindFloat, 2.5), "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
