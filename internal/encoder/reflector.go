package encoder

import (
	"reflect"
	"strings"

	"github.com/jsonease/jsonease/internal/fields"
	"github.com/jsonease/jsonease/internal/models"
)

// StateProvider lets a value supply an equivalent state to encode in
// its place. Returning ok=false marks the value as not serializable
// this way and passes it to the next hook.
type StateProvider interface {
	JSONState() (any, bool)
}

// TextProvider lets a value supply its own JSON text directly. The
// text is written verbatim.
type TextProvider interface {
	JSONText() string
}

// containerProbe generalizes array/object encoding to any slice,
// array or string-keyed map, matching the advanced tier's handling of
// arbitrary sequence and mapping capabilities.
func containerProbe(e *Encoder, sb *strings.Builder, v any) (bool, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// Raw bytes are not a JSON sequence; the API layer
			// converts top-level byte input to a string before
			// encoding, and nested bytes are unsupported.
			return false, nil
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return true, e.encodeSlice(sb, items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return false, nil
		}
		obj := models.NewObject()
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sortStrings(keys)
		for _, key := range keys {
			obj.Set(key, rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface())
		}
		return true, e.encodeObject(sb, obj)
	default:
		return false, nil
	}
}

// reflectProbe serializes arbitrary struct values: first through the
// StateProvider and TextProvider hooks, then by reflecting the
// value's serializable fields into an object.
func reflectProbe(e *Encoder, sb *strings.Builder, v any) (bool, error) {
	if sp, ok := v.(StateProvider); ok {
		if state, serializable := sp.JSONState(); serializable {
			return true, e.scan(sb, state)
		}
	}
	if tp, ok := v.(TextProvider); ok {
		sb.WriteString(tp.JSONText())
		return true, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			sb.WriteString("null")
			return true, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		// Functions, channels and the like are structural metadata,
		// not data; decline so the chain fails with UnsupportedType.
		return false, nil
	}

	obj := models.NewObject()
	for _, f := range fields.Of(rv.Type()) {
		obj.Set(f.Name, rv.FieldByIndex(f.Index).Interface())
	}
	return true, e.encodeObject(sb, obj)
}
