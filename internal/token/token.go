// Package token implements the shared JSON token grammar used by both
// the decoder and the formatter. Every scan function takes the input
// text and a cursor position and returns the position just past the
// token it consumed; callers are responsible for skipping leading
// whitespace first.
package token

import (
	"regexp"
	"strings"

	"github.com/jsonease/jsonease/internal/errors"
)

// DefaultMaxDepth bounds container nesting for decode and format so a
// hostile document fails with a malformed-input error instead of
// exhausting the goroutine stack.
const DefaultMaxDepth = 1000

var numberRegex = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?`)

// SkipBOM returns the position just past a leading UTF-8 byte order
// mark, or 0 when there is none.
func SkipBOM(s string) int {
	if strings.HasPrefix(s, "\uFEFF") {
		return len("\uFEFF")
	}
	return 0
}

// SkipWhitespace returns the first position at or after pos that does
// not hold a JSON whitespace byte.
func SkipWhitespace(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// Null consumes the "null" literal at pos.
func Null(s string, pos int) (int, error) {
	if !strings.HasPrefix(s[pos:], "null") {
		return pos, errors.NewMalformedError(`error parsing JSON "null" literal`, nil)
	}
	return pos + len("null"), nil
}

// Bool consumes a "true" or "false" literal at pos.
func Bool(s string, pos int) (bool, int, error) {
	if strings.HasPrefix(s[pos:], "true") {
		return true, pos + len("true"), nil
	}
	if strings.HasPrefix(s[pos:], "false") {
		return false, pos + len("false"), nil
	}
	return false, pos, errors.NewMalformedError(`error parsing JSON "boolean" literal`, nil)
}

// Number consumes a number token at pos and returns its raw text and
// whether it carries a fraction or exponent part. The int/float
// distinction is load-bearing: "123" and "123.0" must decode to
// different value kinds to round-trip.
func Number(s string, pos int) (text string, isFloat bool, end int, err error) {
	m := numberRegex.FindStringSubmatch(s[pos:])
	if m == nil {
		return "", false, pos, errors.NewMalformedError(`error parsing JSON "number" literal`, nil)
	}
	return m[0], m[2] != "" || m[3] != "", pos + len(m[0]), nil
}

var backslash = map[byte]byte{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// String consumes a quoted string token at pos and returns its
// unescaped value. Each \uXXXX escape is decoded as one independent
// code unit; UTF-16 surrogate pairs are not combined, so an escaped
// surrogate half comes out as the replacement character.
func String(s string, pos int) (string, int, error) {
	if pos >= len(s) || s[pos] != '"' {
		return "", pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
	}
	var sb strings.Builder
	end := pos + 1
	for {
		if end >= len(s) {
			return "", pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
		}
		c := s[end]
		if c == '"' {
			return sb.String(), end + 1, nil
		}
		if c != '\\' {
			sb.WriteByte(c)
			end++
			continue
		}
		if end+1 >= len(s) {
			return "", pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
		}
		esc := s[end+1]
		if esc == 'u' {
			r, ok := hexRune(s, end+2)
			if !ok {
				return "", pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
			}
			sb.WriteRune(r)
			end += 6
			continue
		}
		ch, ok := backslash[esc]
		if !ok {
			return "", pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
		}
		sb.WriteByte(ch)
		end += 2
	}
}

// RawString consumes a quoted string token at pos without unescaping,
// returning only the end position. The formatter uses this to copy
// string tokens byte for byte.
func RawString(s string, pos int) (int, error) {
	if pos >= len(s) || s[pos] != '"' {
		return pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
	}
	end := pos + 1
	for {
		if end >= len(s) {
			return pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
		}
		switch s[end] {
		case '"':
			return end + 1, nil
		case '\\':
			if end+1 >= len(s) {
				return pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
			}
			if s[end+1] == 'u' {
				if _, ok := hexRune(s, end+2); !ok {
					return pos, errors.NewMalformedError(`error parsing JSON "string" literal`, nil)
				}
				end += 6
			} else {
				end += 2
			}
		default:
			end++
		}
	}
}

// hexRune reads four hex digits at pos as one code unit.
func hexRune(s string, pos int) (rune, bool) {
	if pos+4 > len(s) {
		return 0, false
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := s[pos+i]
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, false
		}
	}
	return r, true
}
