package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/thirteen37/crudcfg/internal/tree"
)

// decodeDocument reads one JSON value from data and rejects trailing input.
func decodeDocument(data []byte) (tree.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err := decodeNode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after value")
	}
	return n, nil
}

// decodeNode consumes the next value from the token stream. Objects keep
// their key order, which encoding/json's map decoding would lose.
func decodeNode(dec *json.Decoder) (tree.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return nodeFromToken(dec, tok)
}

func nodeFromToken(dec *json.Decoder, tok json.Token) (tree.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected %q", v)
	case string:
		return tree.NewScalar(tree.KindString, v), nil
	case bool:
		return tree.NewScalar(tree.KindBool, v), nil
	case json.Number:
		return numberNode(v)
	case nil:
		return tree.NewScalar(tree.KindNil, nil), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (tree.Node, error) {
	t := tree.NewTable()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}
		val, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		t.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return t, nil
}

func decodeArray(dec *json.Decoder) (tree.Node, error) {
	a := tree.NewArray()
	for dec.More() {
		val, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		a.Append(val)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return a, nil
}

// numberNode keeps integer and float values distinct and records the source
// token so 1.0 does not collapse to 1 on output.
func numberNode(num json.Number) (tree.Node, error) {
	s := num.String()
	if !strings.ContainsAny(s, ".eE") {
		i, err := num.Int64()
		if err == nil {
			return tree.NewScalarRaw(tree.KindInteger, i, s), nil
		}
	}
	f, err := num.Float64()
	if err != nil {
		return nil, err
	}
	return tree.NewScalarRaw(tree.KindFloat, f, s), nil
}

// detectIndent inspects the source for the indentation of the first nested
// line. Documents with no indented lines report the default two spaces.
func detectIndent(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || len(trimmed) == len(line) {
			continue
		}
		return line[:len(line)-len(trimmed)]
	}
	return "  "
}
