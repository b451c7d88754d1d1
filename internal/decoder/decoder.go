// Package decoder implements the recursive-descent JSON decoder. The
// three tiers (Basic, Advanced, Custom) are composed as ordered lists
// of recognizer probes layered over the same grammar scan, rather
// than as an inheritance chain: a tier is exactly the set of probes
// it installs.
package decoder

import (
	"strconv"

	"github.com/jsonease/jsonease/internal/errors"
	"github.com/jsonease/jsonease/internal/models"
	"github.com/jsonease/jsonease/internal/token"
)

// Tier selects which set of value kinds a Decoder recognizes.
type Tier int

const (
	// TierBasic decodes pure JSON: null, bool, int64/float64, string,
	// Array and *Object.
	TierBasic Tier = iota
	// TierAdvanced additionally recognizes UUID, date, time and
	// datetime strings, and {real,imag} / {start,stop,step} objects.
	TierAdvanced
	// TierCustom decodes like TierAdvanced and can additionally
	// reconstruct a target type from the decoded value.
	TierCustom
)

// stringProbe attempts to interpret a decoded string as an extended
// value. It reports false to pass the string to the next probe.
type stringProbe func(s string) (models.Value, bool)

// objectProbe attempts to interpret a decoded object as an extended
// value. It reports false to leave the object unchanged.
type objectProbe func(o *models.Object) (models.Value, bool)

// Decoder turns JSON text into a value tree. A Decoder holds only
// configuration and is safe for concurrent use.
type Decoder struct {
	tier         Tier
	maxDepth     int
	stringProbes []stringProbe
	objectProbes []objectProbe
}

// New creates a Decoder for the given tier with the default nesting
// limit.
func New(tier Tier) *Decoder {
	d := &Decoder{tier: tier, maxDepth: token.DefaultMaxDepth}
	if tier >= TierAdvanced {
		d.stringProbes = []stringProbe{uuidProbe, datetimeProbe, dateProbe, timeProbe}
		d.objectProbes = []objectProbe{complexProbe, rangeProbe}
	}
	return d
}

// WithMaxDepth returns a copy of the decoder with a different nesting
// limit.
func (d *Decoder) WithMaxDepth(depth int) *Decoder {
	clone := *d
	clone.maxDepth = depth
	return &clone
}

// Tier returns the decoder's tier.
func (d *Decoder) Tier() Tier {
	return d.tier
}

// Decode parses s into a value tree. It fails with a malformed-input
// error when s is empty, when any grammar production fails, or when
// non-whitespace content remains after the top-level value.
func (d *Decoder) Decode(s string) (models.Value, error) {
	if s == "" {
		return nil, errors.NewMalformedError("input is empty", errors.ErrEmptyInput)
	}
	pos := token.SkipBOM(s)
	v, pos, err := d.scan(s, pos, 0)
	if err != nil {
		return nil, err
	}
	if token.SkipWhitespace(s, pos) != len(s) {
		return nil, errors.NewMalformedError("incorrect end of JSON text", errors.ErrTrailingData)
	}
	return v, nil
}

// DecodeAs parses s and reconstructs an instance of the target type
// from the decoded value. The target must be a struct value or a
// pointer to one; its exported fields form the target descriptor.
func (d *Decoder) DecodeAs(s string, target any) (any, error) {
	v, err := d.Decode(s)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return v, nil
	}
	return Cast(v, target)
}

// scan decodes one value starting at pos, skipping leading
// whitespace, and returns the position just past the value's text.
func (d *Decoder) scan(s string, pos, depth int) (models.Value, int, error) {
	pos = token.SkipWhitespace(s, pos)
	if pos >= len(s) {
		return nil, pos, errors.NewMalformedError("unexpected end of JSON text", nil)
	}
	switch c := s[pos]; {
	case c == 'n':
		end, err := token.Null(s, pos)
		if err != nil {
			return nil, pos, err
		}
		return nil, end, nil
	case c == 't' || c == 'f':
		b, end, err := token.Bool(s, pos)
		if err != nil {
			return nil, pos, err
		}
		return b, end, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return d.scanNumber(s, pos)
	case c == '"':
		return d.scanString(s, pos)
	case c == '[':
		return d.scanArray(s, pos, depth+1)
	case c == '{':
		return d.scanObject(s, pos, depth+1)
	default:
		return nil, pos, errors.NewMalformedError("unexpected character in JSON text", nil)
	}
}

func (d *Decoder) scanNumber(s string, pos int) (models.Value, int, error) {
	text, isFloat, end, err := token.Number(s, pos)
	if err != nil {
		return nil, pos, err
	}
	if !isFloat {
		if n, perr := strconv.ParseInt(text, 10, 64); perr == nil {
			return n, end, nil
		}
		// Integer tokens beyond int64 fall back to float64.
	}
	f, perr := strconv.ParseFloat(text, 64)
	if perr != nil {
		return nil, pos, errors.NewMalformedError(`error parsing JSON "number" literal`, perr)
	}
	return f, end, nil
}

func (d *Decoder) scanString(s string, pos int) (models.Value, int, error) {
	str, end, err := token.String(s, pos)
	if err != nil {
		return nil, pos, err
	}
	for _, probe := range d.stringProbes {
		if v, ok := probe(str); ok {
			return v, end, nil
		}
	}
	return str, end, nil
}

func (d *Decoder) scanArray(s string, pos, depth int) (models.Value, int, error) {
	if depth > d.maxDepth {
		return nil, pos, errors.NewMalformedError("nesting too deep", errors.ErrNestingTooDeep)
	}
	arr := models.Array{}
	end := token.SkipWhitespace(s, pos+1)
	if end < len(s) && s[end] == ']' {
		return arr, end + 1, nil
	}
	for {
		v, next, err := d.scan(s, end, depth)
		if err != nil {
			return nil, pos, err
		}
		arr = append(arr, v)
		end = token.SkipWhitespace(s, next)
		if end >= len(s) {
			return nil, pos, errors.NewMalformedError(`error parsing JSON "array"`, nil)
		}
		switch s[end] {
		case ']':
			return arr, end + 1, nil
		case ',':
			end++
		default:
			return nil, pos, errors.NewMalformedError(`error parsing JSON "array"`, nil)
		}
	}
}

func (d *Decoder) scanObject(s string, pos, depth int) (models.Value, int, error) {
	if depth > d.maxDepth {
		return nil, pos, errors.NewMalformedError("nesting too deep", errors.ErrNestingTooDeep)
	}
	obj := models.NewObject()
	end := token.SkipWhitespace(s, pos+1)
	if end < len(s) && s[end] == '}' {
		return obj, end + 1, nil
	}
	for {
		end = token.SkipWhitespace(s, end)
		key, next, err := token.String(s, end)
		if err != nil {
			return nil, pos, err
		}
		end = token.SkipWhitespace(s, next)
		if end >= len(s) || s[end] != ':' {
			return nil, pos, errors.NewMalformedError(`error parsing JSON "object"`, nil)
		}
		v, next, err := d.scan(s, end+1, depth)
		if err != nil {
			return nil, pos, err
		}
		obj.Set(key, v)
		end = token.SkipWhitespace(s, next)
		if end >= len(s) {
			return nil, pos, errors.NewMalformedError(`error parsing JSON "object"`, nil)
		}
		switch s[end] {
		case '}':
			return d.finishObject(obj), end + 1, nil
		case ',':
			end++
		default:
			return nil, pos, errors.NewMalformedError(`error parsing JSON "object"`, nil)
		}
	}
}

func (d *Decoder) finishObject(obj *models.Object) models.Value {
	for _, probe := range d.objectProbes {
		if v, ok := probe(obj); ok {
			return v
		}
	}
	return obj
}
