package toml

import (
	"strings"

	"github.com/thirteen37/crudcfg/internal/format"
	"github.com/thirteen37/crudcfg/internal/tree"
)

// Root returns the document's root table.
func (d *Document) Root() tree.Node {
	return d.root
}

// claims tracks which table keys and array-of-table elements the layout pass
// accounts for, so the trailing sweep only emits genuinely new structure.
type claims struct {
	keys  map[*tree.Table]map[string]bool
	elems map[*tree.Array]map[tree.Node]bool
}

func newClaims() *claims {
	return &claims{
		keys:  map[*tree.Table]map[string]bool{},
		elems: map[*tree.Array]map[tree.Node]bool{},
	}
}

func (c *claims) key(t *tree.Table, k string) {
	m := c.keys[t]
	if m == nil {
		m = map[string]bool{}
		c.keys[t] = m
	}
	m[k] = true
}

func (c *claims) claimedKey(t *tree.Table, k string) bool {
	return c.keys[t][k]
}

func (c *claims) elem(a *tree.Array, n tree.Node) {
	m := c.elems[a]
	if m == nil {
		m = map[tree.Node]bool{}
		c.elems[a] = m
	}
	m[n] = true
}

func (c *claims) claimedElem(a *tree.Array, n tree.Node) bool {
	return c.elems[a][n]
}

// Serialize renders the whole document. Regions the current tree still
// matches are reproduced from their original bytes; mutated entries are
// re-rendered in place, deleted entries drop out, and new structure is
// appended at the end of its owning block (new sections at the end of the
// document).
func (d *Document) Serialize() ([]byte, error) {
	cl := newClaims()

	// First pass: walk every section and entry against the current tree and
	// claim whatever still exists, so new-entry emission below knows what is
	// already accounted for.
	for _, sec := range d.sections {
		if !d.resolveSection(sec, cl) {
			continue
		}
		claimEntries(sec, cl)
	}

	var out []string
	for _, sec := range d.sections {
		if !d.resolveSection(sec, nil) {
			continue
		}
		if sec.headerRaw != "" {
			out = append(out, sec.headerRaw)
		}
		out = append(out, d.renderSection(sec, cl)...)
	}

	d.sweep(d.root, nil, cl, &out, true)

	if len(out) == 0 {
		return []byte{}, nil
	}
	s := strings.Join(out, "\n")
	if d.trailingNL {
		s += "\n"
	}
	return []byte(s), nil
}

// resolveSection re-walks a section's path chain by node identity. It
// reports false when any step was deleted or replaced, in which case the
// section's lines are dropped and surviving content is re-emitted elsewhere.
// With cl set, reachable steps are claimed.
func (d *Document) resolveSection(sec *section, cl *claims) bool {
	cur := d.root
	for _, st := range sec.chain {
		child, ok := cur.Get(st.key)
		if !ok || child != st.node {
			return false
		}
		switch c := child.(type) {
		case *tree.Table:
			if cl != nil {
				cl.key(cur, st.key)
			}
			cur = c
		case *tree.Array:
			found := false
			for j := 0; j < c.Len(); j++ {
				if c.At(j) == st.elem {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			if cl != nil {
				cl.key(cur, st.key)
				cl.elem(c, st.elem)
			}
			cur = st.elem.(*tree.Table)
		default:
			return false
		}
	}
	return true
}

// claimEntries claims the keys a section's key-value lines still cover.
func claimEntries(sec *section, cl *claims) {
	for _, e := range sec.entries {
		if e.trivia {
			continue
		}
		t := sec.table
		ok := true
		for _, part := range e.relKey[:len(e.relKey)-1] {
			child, found := t.Get(part)
			if !found {
				ok = false
				break
			}
			ct, isTable := child.(*tree.Table)
			if !isTable {
				ok = false
				break
			}
			cl.key(t, part)
			t = ct
		}
		if !ok {
			continue
		}
		last := e.relKey[len(e.relKey)-1]
		if t.Has(last) {
			cl.key(t, last)
		}
	}
}

// renderSection emits a live section's entry lines plus any new leaf entries
// of its table, inserted after the last surviving key-value line.
func (d *Document) renderSection(sec *section, cl *claims) []string {
	var lines []string
	lastKV := -1
	for _, e := range sec.entries {
		if e.trivia {
			lines = append(lines, e.raw...)
			continue
		}
		cur, ok := entryValue(sec.table, e.relKey)
		if !ok {
			continue // deleted
		}
		if cur == e.node && !tree.Dirty(cur) {
			lines = append(lines, e.raw...)
		} else {
			lines = append(lines, e.prefix+" "+renderValue(cur)+e.suffix)
		}
		lastKV = len(lines) - 1
	}

	var fresh []string
	for _, k := range sec.table.Keys() {
		if cl.claimedKey(sec.table, k) {
			continue
		}
		v, _ := sec.table.Get(k)
		if isSectionTable(v) {
			continue // becomes its own header block in the sweep
		}
		fresh = append(fresh, renderKey(k)+" = "+renderValue(v))
		cl.key(sec.table, k)
	}
	if len(fresh) == 0 {
		return lines
	}

	at := lastKV + 1
	if sec.headerRaw == "" && lastKV < 0 && len(d.sections) == 1 {
		// Root block of a document with no headers: append after any
		// leading comments instead of in front of them.
		at = len(lines)
	}
	out := make([]string, 0, len(lines)+len(fresh))
	out = append(out, lines[:at]...)
	out = append(out, fresh...)
	out = append(out, lines[at:]...)
	return out
}

// entryValue walks a key-value line's dotted key from its section table and
// returns the node currently at that position.
func entryValue(owner *tree.Table, relKey []string) (tree.Node, bool) {
	t := owner
	for _, part := range relKey[:len(relKey)-1] {
		child, ok := t.Get(part)
		if !ok {
			return nil, false
		}
		ct, ok := child.(*tree.Table)
		if !ok {
			return nil, false
		}
		t = ct
	}
	return t.Get(relKey[len(relKey)-1])
}

func isSectionTable(n tree.Node) bool {
	t, ok := n.(*tree.Table)
	return ok && !t.Inline
}

// sweep appends blocks for structure the layout never covered: new section
// tables and new elements of arrays of tables. needHeader is false when the
// caller already emitted a header for tbl's block.
func (d *Document) sweep(tbl *tree.Table, p []string, cl *claims, out *[]string, needHeader bool) {
	var fresh []string
	for _, k := range tbl.Keys() {
		if cl.claimedKey(tbl, k) {
			continue
		}
		v, _ := tbl.Get(k)
		if isSectionTable(v) {
			continue
		}
		fresh = append(fresh, renderKey(k)+" = "+renderValue(v))
		cl.key(tbl, k)
	}
	if len(fresh) > 0 {
		if needHeader && len(p) > 0 {
			*out = append(*out, "["+renderKeyPath(p)+"]")
		}
		*out = append(*out, fresh...)
	}

	for _, k := range tbl.Keys() {
		v, _ := tbl.Get(k)
		switch c := v.(type) {
		case *tree.Table:
			if c.Inline {
				continue
			}
			cl.key(tbl, k)
			d.sweep(c, append(append([]string(nil), p...), k), cl, out, true)
		case *tree.Array:
			path, ok := d.sectionArr[c]
			if !ok {
				continue
			}
			for i := 0; i < c.Len(); i++ {
				el, isTable := c.At(i).(*tree.Table)
				if !isTable || cl.claimedElem(c, c.At(i)) {
					continue
				}
				cl.elem(c, c.At(i))
				*out = append(*out, "[["+renderKeyPath(path)+"]]")
				d.sweep(el, path, cl, out, false)
			}
		}
	}
}

// Render renders a single node of the document, as used for read results.
func (d *Document) Render(n tree.Node) ([]byte, error) {
	if n == tree.Node(d.root) {
		return d.Serialize()
	}
	switch v := n.(type) {
	case *tree.Scalar:
		return []byte(renderScalar(v)), nil
	case *tree.Array:
		if p, ok := d.sectionArr[v]; ok {
			var out []string
			for i := 0; i < v.Len(); i++ {
				out = append(out, "[["+renderKeyPath(p)+"]]")
				if el, isTable := v.At(i).(*tree.Table); isTable {
					out = append(out, tableBodyLines(el, nil)...)
				}
			}
			return []byte(strings.Join(out, "\n") + "\n"), nil
		}
		return []byte(renderValue(v)), nil
	case *tree.Table:
		if v.Inline {
			return []byte(renderValue(v)), nil
		}
		lines := tableBodyLines(v, nil)
		if len(lines) == 0 {
			return []byte{}, nil
		}
		return []byte(strings.Join(lines, "\n") + "\n"), nil
	}
	return nil, nil
}

// tableBodyLines renders a table's contents as document lines: leaf entries
// first, then section subtables as header blocks relative to the rendered
// root.
func tableBodyLines(t *tree.Table, prefix []string) []string {
	var lines []string
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		if isSectionTable(v) {
			continue
		}
		lines = append(lines, renderKey(k)+" = "+renderValue(v))
	}
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		if !isSectionTable(v) {
			continue
		}
		p := append(append([]string(nil), prefix...), k)
		lines = append(lines, "["+renderKeyPath(p)+"]")
		lines = append(lines, tableBodyLines(v.(*tree.Table), p)...)
	}
	return lines
}

var _ format.Document = (*Document)(nil)
