// Package formatter re-renders raw JSON text with controlled
// indentation. It scans the same grammar as the decoder but never
// builds a value tree: scalar tokens are copied byte for byte, so
// number spellings and string escapes survive formatting unchanged.
package formatter

import (
	"strings"

	"github.com/jsonease/jsonease/internal/errors"
	"github.com/jsonease/jsonease/internal/token"
)

// Formatter pretty-prints JSON text. A Formatter holds only
// configuration and is safe for concurrent use.
type Formatter struct {
	// Align is the base indentation of the top-level value.
	Align int
	// Indent is the number of spaces added per nesting level.
	Indent int
	// ItemSep joins consecutive array elements or object members.
	ItemSep string
	// KeySep separates an object key from its value.
	KeySep string
	// EOL terminates the line after a container opener and before its
	// closer.
	EOL string
	// MaxDepth bounds container nesting; zero means the default.
	MaxDepth int
}

// New creates a Formatter with the default settings: no base
// alignment, 4-space indent, CRLF separators.
func New() *Formatter {
	return &Formatter{
		Align:   0,
		Indent:  4,
		ItemSep: ",\r\n",
		KeySep:  ": ",
		EOL:     "\r\n",
	}
}

// Format re-renders s with the formatter's indentation settings.
// Leading BOM/whitespace and trailing whitespace outside the
// top-level value pass through unchanged. Format fails on the same
// malformed-token and trailing-content conditions as the decoder.
func (f *Formatter) Format(s string) (string, error) {
	if s == "" {
		return "", errors.NewMalformedError("input is empty", errors.ErrEmptyInput)
	}
	var out strings.Builder
	pos := token.SkipBOM(s)
	pos = token.SkipWhitespace(s, pos)
	out.WriteString(s[:pos])
	text, pos, err := f.scan(s, pos, f.Align, 0)
	if err != nil {
		return "", err
	}
	out.WriteString(text)
	if token.SkipWhitespace(s, pos) != len(s) {
		return "", errors.NewMalformedError("incorrect end of JSON text", errors.ErrTrailingData)
	}
	out.WriteString(s[pos:])
	return out.String(), nil
}

func (f *Formatter) maxDepth() int {
	if f.MaxDepth > 0 {
		return f.MaxDepth
	}
	return token.DefaultMaxDepth
}

// scan renders one value starting at pos at the given alignment and
// returns the rendered text and the position just past the value.
func (f *Formatter) scan(s string, pos, align, depth int) (string, int, error) {
	pos = token.SkipWhitespace(s, pos)
	if pos >= len(s) {
		return "", pos, errors.NewMalformedError("unexpected end of JSON text", nil)
	}
	switch c := s[pos]; {
	case c == 'n':
		end, err := token.Null(s, pos)
		if err != nil {
			return "", pos, err
		}
		return pad(align) + s[pos:end], end, nil
	case c == 't' || c == 'f':
		_, end, err := token.Bool(s, pos)
		if err != nil {
			return "", pos, err
		}
		return pad(align) + s[pos:end], end, nil
	case c == '-' || (c >= '0' && c <= '9'):
		_, _, end, err := token.Number(s, pos)
		if err != nil {
			return "", pos, err
		}
		return pad(align) + s[pos:end], end, nil
	case c == '"':
		end, err := token.RawString(s, pos)
		if err != nil {
			return "", pos, err
		}
		return pad(align) + s[pos:end], end, nil
	case c == '[':
		return f.formatArray(s, pos, align, depth+1)
	case c == '{':
		return f.formatObject(s, pos, align, depth+1)
	default:
		return "", pos, errors.NewMalformedError("unexpected character in JSON text", nil)
	}
}

func (f *Formatter) formatArray(s string, pos, align, depth int) (string, int, error) {
	if depth > f.maxDepth() {
		return "", pos, errors.NewMalformedError("nesting too deep", errors.ErrNestingTooDeep)
	}
	end := token.SkipWhitespace(s, pos+1)
	if end < len(s) && s[end] == ']' {
		return pad(align) + "[]", end + 1, nil
	}
	var sb strings.Builder
	sb.WriteString(pad(align))
	sb.WriteByte('[')
	sb.WriteString(f.EOL)
	inner := align + f.Indent
	for {
		text, next, err := f.scan(s, end, inner, depth)
		if err != nil {
			return "", pos, err
		}
		sb.WriteString(text)
		end = token.SkipWhitespace(s, next)
		if end >= len(s) {
			return "", pos, errors.NewMalformedError(`error parsing JSON "array"`, nil)
		}
		if s[end] == ']' {
			sb.WriteString(f.EOL)
			break
		}
		if s[end] != ',' {
			return "", pos, errors.NewMalformedError(`error parsing JSON "array"`, nil)
		}
		end++
		sb.WriteString(f.ItemSep)
	}
	sb.WriteString(pad(align))
	sb.WriteByte(']')
	return sb.String(), end + 1, nil
}

func (f *Formatter) formatObject(s string, pos, align, depth int) (string, int, error) {
	if depth > f.maxDepth() {
		return "", pos, errors.NewMalformedError("nesting too deep", errors.ErrNestingTooDeep)
	}
	end := token.SkipWhitespace(s, pos+1)
	if end < len(s) && s[end] == '}' {
		return pad(align) + "{}", end + 1, nil
	}
	var sb strings.Builder
	sb.WriteString(pad(align))
	sb.WriteByte('{')
	sb.WriteString(f.EOL)
	inner := align + f.Indent
	for {
		end = token.SkipWhitespace(s, end)
		keyStart := end
		keyEnd, err := token.RawString(s, end)
		if err != nil {
			return "", pos, err
		}
		end = token.SkipWhitespace(s, keyEnd)
		if end >= len(s) || s[end] != ':' {
			return "", pos, errors.NewMalformedError(`error parsing JSON "object"`, nil)
		}
		sb.WriteString(pad(inner))
		sb.WriteString(s[keyStart:keyEnd])
		sb.WriteString(f.KeySep)
		text, next, err := f.scan(s, end+1, inner, depth)
		if err != nil {
			return "", pos, err
		}
		// The value was rendered at the member alignment; the key
		// already occupies that indentation on this line.
		sb.WriteString(strings.TrimLeft(text, " "))
		end = token.SkipWhitespace(s, next)
		if end >= len(s) {
			return "", pos, errors.NewMalformedError(`error parsing JSON "object"`, nil)
		}
		if s[end] == '}' {
			sb.WriteString(f.EOL)
			break
		}
		if s[end] != ',' {
			return "", pos, errors.NewMalformedError(`error parsing JSON "object"`, nil)
		}
		end++
		sb.WriteString(f.ItemSep)
	}
	sb.WriteString(pad(align))
	sb.WriteByte('}')
	return sb.String(), end + 1, nil
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}
