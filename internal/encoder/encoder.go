// Package encoder implements the layered JSON encoder. Like the
// decoder, the Basic/Advanced/Custom tiers are an ordered list of
// probes: each probe either claims the value and writes its text, or
// declines so the next probe gets a chance. Only when every probe has
// declined does the encoder fail with an unsupported-type error.
package encoder

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jsonease/jsonease/internal/errors"
	"github.com/jsonease/jsonease/internal/models"
)

// Tier selects which set of value kinds an Encoder supports.
type Tier int

const (
	// TierBasic encodes pure JSON kinds: nil, bool, integers, floats,
	// string, Array/[]any and *Object/map[string]any.
	TierBasic Tier = iota
	// TierAdvanced additionally encodes UUID, date/time/datetime,
	// complex and range values, and generalizes container handling to
	// any slice, array or string-keyed map.
	TierAdvanced
	// TierCustom additionally serializes arbitrary struct values via
	// the state/text hooks or reflection.
	TierCustom
)

const (
	itemSeparator = ", "
	keySeparator  = ": "
)

// probe writes the JSON text for v if it recognizes v's kind. It
// reports false, without writing, to decline.
type probe func(e *Encoder, sb *strings.Builder, v any) (bool, error)

// Encoder turns a value into JSON text. An Encoder holds only
// configuration and is safe for concurrent use.
type Encoder struct {
	tier   Tier
	probes []probe
}

// New creates an Encoder for the given tier.
func New(tier Tier) *Encoder {
	e := &Encoder{tier: tier}
	e.probes = []probe{basicProbe}
	if tier >= TierAdvanced {
		e.probes = append(e.probes, extendedProbe, containerProbe)
	}
	if tier >= TierCustom {
		e.probes = append(e.probes, reflectProbe)
	}
	return e
}

// Tier returns the encoder's tier.
func (e *Encoder) Tier() Tier {
	return e.tier
}

// Encode returns the JSON text for v, failing with an
// unsupported-type error when no tier recognizes v's kind.
func (e *Encoder) Encode(v any) (string, error) {
	var sb strings.Builder
	if err := e.scan(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Encoder) scan(sb *strings.Builder, v any) error {
	for _, p := range e.probes {
		handled, err := p(e, sb, v)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	return errors.NewUnsupportedError(fmt.Sprintf("cannot encode value of type %T", v), nil)
}

func basicProbe(e *Encoder, sb *strings.Builder, v any) (bool, error) {
	switch val := v.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		if val {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case string:
		encodeString(sb, val)
	case int:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int8:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int16:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int32:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case uint:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint8:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint16:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint32:
		sb.WriteString(strconv.FormatUint(uint64(val), 10))
	case uint64:
		sb.WriteString(strconv.FormatUint(val, 10))
	case float32:
		return true, encodeFloat(sb, float64(val))
	case float64:
		return true, encodeFloat(sb, val)
	case models.Array:
		items := make([]any, len(val))
		for i, v := range val {
			items[i] = v
		}
		return true, e.encodeSlice(sb, items)
	case []any:
		return true, e.encodeSlice(sb, val)
	case *models.Object:
		return true, e.encodeObject(sb, val)
	case map[string]any:
		return true, e.encodeMap(sb, val)
	default:
		return false, nil
	}
	return true, nil
}

// encodeFloat renders a float so that it re-decodes as a float: an
// integral value gets a trailing ".0" to stay distinct from an
// integer token.
func encodeFloat(sb *strings.Builder, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.NewUnsupportedError("cannot encode non-finite float", nil)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	sb.WriteString(s)
	return nil
}

var shortEscape = map[byte]string{
	'"':  `\"`,
	'\\': `\\`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

func encodeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if esc, ok := shortEscape[c]; ok {
			sb.WriteString(esc)
			continue
		}
		if c < 0x20 {
			fmt.Fprintf(sb, `\u%04x`, c)
			continue
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
}

func (e *Encoder) encodeSlice(sb *strings.Builder, items []any) error {
	if len(items) == 0 {
		sb.WriteString("[]")
		return nil
	}
	sb.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			sb.WriteString(itemSeparator)
		}
		if err := e.scan(sb, item); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}

func (e *Encoder) encodeObject(sb *strings.Builder, obj *models.Object) error {
	if obj.Len() == 0 {
		sb.WriteString("{}")
		return nil
	}
	sb.WriteByte('{')
	for i, key := range obj.Keys() {
		if i > 0 {
			sb.WriteString(itemSeparator)
		}
		encodeString(sb, key)
		sb.WriteString(keySeparator)
		v, _ := obj.Get(key)
		if err := e.scan(sb, v); err != nil {
			return err
		}
	}
	sb.WriteByte('}')
	return nil
}

// encodeMap encodes a native Go map with sorted keys, since map
// iteration order is not deterministic.
func (e *Encoder) encodeMap(sb *strings.Builder, m map[string]any) error {
	obj := models.NewObject()
	for _, key := range sortedKeys(m) {
		obj.Set(key, m[key])
	}
	return e.encodeObject(sb, obj)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	return keys
}

func sortStrings(keys []string) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

// extendedProbe serializes the advanced-tier scalar kinds.
func extendedProbe(e *Encoder, sb *strings.Builder, v any) (bool, error) {
	switch val := v.(type) {
	case uuid.UUID:
		encodeString(sb, val.String())
	case complex64:
		return true, encodeComplex(sb, complex128(val))
	case complex128:
		return true, encodeComplex(sb, val)
	case models.Range:
		return true, e.encodeRange(sb, &val)
	case *models.Range:
		return true, e.encodeRange(sb, val)
	case time.Time:
		encodeString(sb, isoDateTime(val))
	case models.Date:
		encodeString(sb, val.ISO())
	case models.TimeOfDay:
		encodeString(sb, val.ISO())
	default:
		return false, nil
	}
	return true, nil
}

func encodeComplex(sb *strings.Builder, c complex128) error {
	sb.WriteString(`{"real": `)
	if err := encodeFloat(sb, real(c)); err != nil {
		return err
	}
	sb.WriteString(`, "imag": `)
	if err := encodeFloat(sb, imag(c)); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func (e *Encoder) encodeRange(sb *strings.Builder, r *models.Range) error {
	sb.WriteString(`{"start": `)
	if err := e.scan(sb, r.Start); err != nil {
		return err
	}
	sb.WriteString(`, "stop": `)
	if err := e.scan(sb, r.Stop); err != nil {
		return err
	}
	sb.WriteString(`, "step": `)
	if err := e.scan(sb, r.Step); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

// isoDateTime renders a datetime at seconds precision with its UTC
// offset, substituting Z for a zero offset.
func isoDateTime(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05-07:00")
	if strings.HasSuffix(s, "+00:00") || strings.HasSuffix(s, "-00:00") {
		s = s[:len(s)-6] + "Z"
	}
	return s
}
