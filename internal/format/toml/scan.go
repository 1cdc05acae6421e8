package toml

import (
	"errors"
	"strings"
)

// qstate tracks string-literal context while scanning TOML text, so that
// structural characters inside basic/literal (and multiline) strings are
// never mistaken for syntax.
type qstate struct {
	inBasic      bool
	inLiteral    bool
	basicMulti   bool
	literalMulti bool
}

// active reports whether the scanner is currently inside a string literal.
func (q *qstate) active() bool {
	return q.inBasic || q.inLiteral
}

// step consumes the token starting at s[i] and returns the next index.
func (q *qstate) step(s string, i int) int {
	ch := s[i]
	switch {
	case q.inBasic:
		if ch == '\\' {
			return i + 2
		}
		if q.basicMulti {
			if strings.HasPrefix(s[i:], `"""`) {
				q.inBasic, q.basicMulti = false, false
				return i + 3
			}
		} else if ch == '"' {
			q.inBasic = false
		}
		return i + 1
	case q.inLiteral:
		if q.literalMulti {
			if strings.HasPrefix(s[i:], `'''`) {
				q.inLiteral, q.literalMulti = false, false
				return i + 3
			}
		} else if ch == '\'' {
			q.inLiteral = false
		}
		return i + 1
	case ch == '"':
		if strings.HasPrefix(s[i:], `"""`) {
			q.inBasic, q.basicMulti = true, true
			return i + 3
		}
		q.inBasic = true
		return i + 1
	case ch == '\'':
		if strings.HasPrefix(s[i:], `'''`) {
			q.inLiteral, q.literalMulti = true, true
			return i + 3
		}
		q.inLiteral = true
		return i + 1
	}
	return i + 1
}

// findUnquotedEqual returns the index of the first '=' outside any string
// literal, or -1.
func findUnquotedEqual(s string) int {
	var q qstate
	for i := 0; i < len(s); {
		if !q.active() && s[i] == '=' {
			return i
		}
		i = q.step(s, i)
	}
	return -1
}

// commentIndex returns the index of the first '#' outside any string
// literal, or -1.
func commentIndex(s string) int {
	var q qstate
	for i := 0; i < len(s); {
		if !q.active() && s[i] == '#' {
			return i
		}
		i = q.step(s, i)
	}
	return -1
}

// stripComment removes a trailing comment, preserving '#' inside strings.
func stripComment(s string) string {
	if i := commentIndex(s); i >= 0 {
		return s[:i]
	}
	return s
}

// scanLine updates bracket depth across one line of a compound value,
// honoring strings and comments. String state carries across lines for
// multiline strings nested inside arrays.
func (q *qstate) scanLine(s string, depth *int) {
	for i := 0; i < len(s); {
		if !q.active() {
			switch s[i] {
			case '#':
				return
			case '[', '{':
				*depth++
			case ']', '}':
				*depth--
			}
		}
		i = q.step(s, i)
	}
}

// valueEnd returns the index of the last physical line of the value that
// starts on lines[i] (first holds the text after '='). Single-line values
// end where they start; multiline strings and bracketed compounds may span
// further lines.
func valueEnd(lines []string, i int, first string) (int, error) {
	stripped := strings.TrimSpace(stripComment(first))
	if strings.HasPrefix(stripped, `"""`) || strings.HasPrefix(stripped, `'''`) {
		delim := stripped[:3]
		if strings.Contains(stripped[3:], delim) {
			return i, nil
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.Contains(lines[j], delim) {
				return j, nil
			}
		}
		return 0, errors.New("unterminated multiline string")
	}
	if strings.HasPrefix(stripped, "[") || strings.HasPrefix(stripped, "{") {
		var q qstate
		depth := 0
		q.scanLine(first, &depth)
		j := i
		for depth > 0 || q.active() {
			j++
			if j >= len(lines) {
				return 0, errors.New("unterminated compound value")
			}
			q.scanLine(lines[j], &depth)
		}
		return j, nil
	}
	return i, nil
}

// parseKeyParts splits a possibly dotted, possibly quoted TOML key into its
// parts. Quoted parts keep dots and spaces literal.
func parseKeyParts(s string) ([]string, error) {
	var parts []string
	var cur strings.Builder
	quoted := false
	inQuote := byte(0)
	escape := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inQuote != 0 {
			if inQuote == '"' && ch == '\\' && !escape {
				escape = true
				continue
			}
			if escape {
				cur.WriteByte(ch)
				escape = false
				continue
			}
			if ch == inQuote {
				inQuote = 0
				continue
			}
			cur.WriteByte(ch)
			continue
		}
		switch ch {
		case '"', '\'':
			if strings.TrimSpace(cur.String()) != "" {
				return nil, errors.New("invalid quoted key position")
			}
			cur.Reset()
			inQuote = ch
			quoted = true
		case '.':
			part := strings.TrimSpace(cur.String())
			if part != "" || quoted {
				parts = append(parts, part)
			}
			cur.Reset()
			quoted = false
		default:
			cur.WriteByte(ch)
		}
	}
	if inQuote != 0 {
		return nil, errors.New("unterminated quoted key")
	}
	last := strings.TrimSpace(cur.String())
	if last != "" || quoted {
		parts = append(parts, last)
	}
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}
	return parts, nil
}
