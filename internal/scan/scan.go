// Package scan implements the lexical helpers used by the expression
// translator: normalization, word boundaries, delimiter matching and
// argument splitting over formula-language text.
package scan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrUnbalanced is returned when a delimiter has no matching partner.
var ErrUnbalanced = errors.New("unbalanced delimiter")

// Normalize removes whitespace and canonicalizes single quotes to double
// quotes.
func Normalize(expr string) string {
	var sb strings.Builder
	sb.Grow(len(expr))
	for _, r := range expr {
		switch {
		case unicode.IsSpace(r):
		case r == '\'':
			sb.WriteByte('"')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// IsWordByte reports whether c can be part of a word.
func IsWordByte(c byte) bool {
	return c == '_' || c == '.' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') ||
		c >= 0x80
}

// NextBreak returns the index of the first byte of text that cannot be part
// of a word, or len(text) if the whole text is one word.
func NextBreak(text string) int {
	for i := 0; i < len(text); i++ {
		if !IsWordByte(text[i]) {
			return i
		}
	}
	return len(text)
}

// MatchParen returns the index of the ')' matching the '(' at open.
func MatchParen(text string, open int) (int, error) {
	return match(text, open, '(', ')')
}

// MatchBracket returns the index of the ']' matching the '[' at open.
func MatchBracket(text string, open int) (int, error) {
	return match(text, open, '[', ']')
}

func match(text string, open int, l, r byte) (int, error) {
	if open < 0 || open >= len(text) || text[open] != l {
		return -1, fmt.Errorf("expected %q at position %d: %w", l, open, ErrUnbalanced)
	}
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '"':
			end := strings.IndexByte(text[i+1:], '"')
			if end < 0 {
				return -1, fmt.Errorf("unterminated string at position %d: %w", i, ErrUnbalanced)
			}
			i += end + 1
		case l:
			depth++
		case r:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("no %q for %q at position %d: %w", r, l, open, ErrUnbalanced)
}

// SplitArgs splits text on commas that are not nested inside parentheses,
// brackets or quotes opened within text.
func SplitArgs(text string) ([]string, error) {
	var args []string
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			end := strings.IndexByte(text[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated string at position %d: %w", i, ErrUnbalanced)
			}
			i += end + 1
		case '(', '[':
			depth++
		case ')', ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unexpected %q at position %d: %w", text[i], i, ErrUnbalanced)
			}
		case ',':
			if depth == 0 {
				args = append(args, text[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unclosed delimiter in %q: %w", text, ErrUnbalanced)
	}
	return append(args, text[start:]), nil
}

// IsQuoted reports whether s is a double-quoted string.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// Unquote strips surrounding double quotes, if any.
func Unquote(s string) string {
	if IsQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseMatrix parses the body of a matrix literal, without its outer
// brackets. Rows are separated by ';' ("1,2;3,4") or written as bracketed
// rows ("[1,2],[3,4]"); a plain list is a single row.
func ParseMatrix(body string) ([][]float64, error) {
	body = Normalize(body)
	var rows []string
	if strings.HasPrefix(body, "[") {
		parts, err := SplitArgs(body)
		if err != nil {
			return nil, err
		}
		for _, p := range parts {
			if !strings.HasPrefix(p, "[") || !strings.HasSuffix(p, "]") {
				return nil, fmt.Errorf("matrix row %q is not bracketed", p)
			}
			rows = append(rows, p[1:len(p)-1])
		}
	} else {
		rows = strings.Split(body, ";")
	}

	matrix := make([][]float64, 0, len(rows))
	for r, row := range rows {
		fields := strings.Split(row, ",")
		vals := make([]float64, len(fields))
		for c, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("matrix element [%d,%d] %q: %w", r, c, f, err)
			}
			vals[c] = v
		}
		if r > 0 && len(vals) != len(matrix[0]) {
			return nil, fmt.Errorf("matrix row %d has %d columns, want %d", r, len(vals), len(matrix[0]))
		}
		matrix = append(matrix, vals)
	}
	return matrix, nil
}
