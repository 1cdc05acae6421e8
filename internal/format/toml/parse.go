package toml

import (
	"fmt"
	"strings"

	"github.com/thirteen37/crudcfg/internal/tree"
)

// entry is one layout record inside a section: either trivia (a blank or
// comment line, reproduced verbatim) or a key-value with the physical lines
// it occupied and the value node it produced.
type entry struct {
	trivia bool
	raw    []string

	relKey []string  // dotted key parts, relative to the section's table
	node   tree.Node // value recorded at parse time
	prefix string    // first physical line up to and including '='
	suffix string    // trailing comment, single-line values only
}

// chainStep records one path step from the root to a section's table: the
// key, the node it held at parse time and, when that node is an array of
// tables, the element that was entered. Serialization re-walks the chain by
// identity so renames, deletions and replacements drop the section cleanly.
type chainStep struct {
	key  string
	node tree.Node
	elem tree.Node
}

// section is one header block of the document (the first section is the
// synthetic root block before any header).
type section struct {
	headerRaw string
	path      []string
	isArray   bool
	chain     []chainStep
	arr       *tree.Array // isArray only
	table     *tree.Table // the table entries land in (for arrays, the element)
	entries   []*entry
}

// Document is a parsed TOML file: the logical tree plus the layout needed to
// reproduce untouched regions byte-for-byte.
type Document struct {
	root       *tree.Table
	sections   []*section
	sectionArr map[*tree.Array][]string // array-of-tables -> header path
	trailingNL bool
}

func parseDocument(data []byte) (*Document, error) {
	d := &Document{
		root:       tree.NewTable(),
		sectionArr: map[*tree.Array][]string{},
		trailingNL: true,
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(string(data), "\n")
		if lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		} else {
			d.trailingNL = false
		}
	}

	cur := &section{table: d.root}
	d.sections = append(d.sections, cur)

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			cur.entries = append(cur.entries, &entry{trivia: true, raw: []string{line}})
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			sec, err := d.parseHeader(line, i+1)
			if err != nil {
				return nil, err
			}
			d.sections = append(d.sections, sec)
			cur = sec
			continue
		}

		eq := findUnquotedEqual(line)
		if eq < 0 {
			return nil, fmt.Errorf("line %d: invalid syntax", i+1)
		}
		end, err := d.parseKeyValue(cur, lines, i, eq)
		if err != nil {
			return nil, err
		}
		i = end
	}

	tree.MarkClean(d.root)
	return d, nil
}

// parseKeyValue consumes the key-value starting at lines[i] (with '=' at eq)
// plus any continuation lines, records the layout entry in sec, and returns
// the index of the last line consumed.
func (d *Document) parseKeyValue(sec *section, lines []string, i, eq int) (int, error) {
	line := lines[i]
	keyText := line[:eq]
	valText := line[eq+1:]

	end, err := valueEnd(lines, i, valText)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", i+1, err)
	}
	full := valText
	if end > i {
		full = strings.Join(append([]string{valText}, lines[i+1:end+1]...), "\n")
	}

	node, err := decodeValue(full)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", i+1, err)
	}
	if s, ok := node.(*tree.Scalar); ok && end == i {
		node = tree.NewScalarRaw(s.Kind, s.Value, strings.TrimSpace(stripComment(valText)))
	}

	parts, err := parseKeyParts(strings.TrimSpace(keyText))
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", i+1, err)
	}

	t := sec.table
	for _, part := range parts[:len(parts)-1] {
		child, ok := t.Get(part)
		if !ok {
			next := tree.NewTable()
			t.Set(part, next)
			t = next
			continue
		}
		ct, ok := child.(*tree.Table)
		if !ok {
			return 0, fmt.Errorf("line %d: key %q already defined and is not a table", i+1, part)
		}
		t = ct
	}
	last := parts[len(parts)-1]
	if t.Has(last) {
		return 0, fmt.Errorf("line %d: duplicate key %q", i+1, last)
	}
	t.Set(last, node)

	e := &entry{
		raw:    append([]string(nil), lines[i:end+1]...),
		relKey: parts,
		node:   node,
		prefix: line[:eq+1],
	}
	if end == i {
		if ci := commentIndex(valText); ci >= 0 {
			start := ci
			for start > 0 && (valText[start-1] == ' ' || valText[start-1] == '\t') {
				start--
			}
			e.suffix = valText[start:]
		}
	}
	sec.entries = append(sec.entries, e)
	return end, nil
}

// parseHeader handles a [table] or [[array-of-tables]] header line, creating
// or extending tree structure and opening a new section.
func (d *Document) parseHeader(line string, lineNo int) (*section, error) {
	s := strings.TrimSpace(stripComment(line))
	isArray := strings.HasPrefix(s, "[[")

	var name string
	if isArray {
		if !strings.HasSuffix(s, "]]") {
			return nil, fmt.Errorf("line %d: invalid array-of-tables header", lineNo)
		}
		name = strings.TrimSpace(s[2 : len(s)-2])
	} else {
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("line %d: invalid table header", lineNo)
		}
		name = strings.TrimSpace(s[1 : len(s)-1])
	}

	parts, err := parseKeyParts(name)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo, err)
	}

	sec := &section{headerRaw: line, path: parts, isArray: isArray}
	cur := d.root
	stop := len(parts)
	if isArray {
		stop--
	}
	for i := 0; i < stop; i++ {
		part := parts[i]
		child, ok := cur.Get(part)
		if !ok {
			next := tree.NewTable()
			cur.Set(part, next)
			sec.chain = append(sec.chain, chainStep{key: part, node: next})
			cur = next
			continue
		}
		switch c := child.(type) {
		case *tree.Table:
			sec.chain = append(sec.chain, chainStep{key: part, node: c})
			cur = c
		case *tree.Array:
			// A header path through an array of tables targets its last
			// element.
			if c.Len() == 0 {
				return nil, fmt.Errorf("line %d: key %q is an empty array of tables", lineNo, part)
			}
			elem, ok := c.At(c.Len() - 1).(*tree.Table)
			if !ok {
				return nil, fmt.Errorf("line %d: key %q is not an array of tables", lineNo, part)
			}
			sec.chain = append(sec.chain, chainStep{key: part, node: c, elem: elem})
			cur = elem
		default:
			return nil, fmt.Errorf("line %d: key %q already defined and is not a table", lineNo, part)
		}
	}

	if !isArray {
		sec.table = cur
		return sec, nil
	}

	last := parts[len(parts)-1]
	var arr *tree.Array
	if child, ok := cur.Get(last); ok {
		a, ok := child.(*tree.Array)
		if !ok {
			return nil, fmt.Errorf("line %d: key %q already defined and is not an array", lineNo, last)
		}
		arr = a
	} else {
		arr = tree.NewArray()
		cur.Set(last, arr)
	}
	elem := tree.NewTable()
	arr.Append(elem)
	d.sectionArr[arr] = parts
	sec.chain = append(sec.chain, chainStep{key: last, node: arr, elem: elem})
	sec.arr = arr
	sec.table = elem
	return sec, nil
}
