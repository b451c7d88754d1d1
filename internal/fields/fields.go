// Package fields enumerates the serializable fields of a struct type.
// It is the single naming rule shared by the custom decoder's target
// reconstruction and the custom encoder's reflection fallback, so a
// reflected value decodes back into the same shape it encoded from.
package fields

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// Field describes one serializable struct field.
type Field struct {
	// Name is the JSON key: the json tag name when present, else the
	// snake_case form of the Go field name.
	Name string
	// Index is the field's index path for reflect.Value.FieldByIndex.
	Index []int
}

// Of returns the serializable fields of t in declaration order: the
// struct's own exported fields first, then fields promoted from
// embedded structs nearest-first, skipping names already taken.
// Unexported fields, func-typed fields and fields tagged `json:"-"`
// are excluded.
func Of(t reflect.Type) []Field {
	seen := make(map[string]bool)
	return collect(t, nil, seen)
}

func collect(t reflect.Type, prefix []int, seen map[string]bool) []Field {
	type embed struct {
		t     reflect.Type
		index []int
	}
	var out []Field
	var embeds []embed

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		index := append(append([]int(nil), prefix...), i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			embeds = append(embeds, embed{t: f.Type, index: index})
			continue
		}
		if f.Type.Kind() == reflect.Func {
			continue
		}
		name, ok := jsonName(f)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Field{Name: name, Index: index})
	}

	for _, e := range embeds {
		out = append(out, collect(e.t, e.index, seen)...)
	}
	return out
}

func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name, true
		}
	}
	return strcase.ToSnake(f.Name), true
}
