package decoder

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/jsonease/jsonease/internal/errors"
	"github.com/jsonease/jsonease/internal/fields"
	"github.com/jsonease/jsonease/internal/models"
)

// Cast reconstructs an instance of the target's type from a decoded
// value. The target is a prototype: a struct value or pointer to one;
// a pointer prototype yields a pointer result. The target's
// serializable fields (see internal/fields) form its descriptor:
//
//   - zero fields: the zero instance, regardless of the value
//   - scalar value: the target must declare exactly one field
//   - sequence value: field count must equal the sequence length,
//     assigned positionally
//   - mapping value: every field name must be present as a key,
//     assigned by name
//
// Any mismatch fails with a casting error.
func Cast(v models.Value, target any) (any, error) {
	rt := reflect.TypeOf(target)
	if rt == nil {
		return nil, errors.NewCastingError("target type is nil", nil)
	}
	wantPtr := false
	if rt.Kind() == reflect.Pointer {
		wantPtr = true
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, errors.NewCastingError(
			fmt.Sprintf("target type %s is not a struct", rt), nil)
	}

	fl := fields.Of(rt)
	inst := reflect.New(rt).Elem()

	if len(fl) == 0 {
		return result(inst, wantPtr), nil
	}

	switch val := v.(type) {
	case *models.Object:
		for _, f := range fl {
			fv, ok := val.Get(f.Name)
			if !ok {
				return nil, errors.NewCastingError(
					fmt.Sprintf("missing key %q for target %s", f.Name, rt), nil)
			}
			if err := assign(inst.FieldByIndex(f.Index), fv); err != nil {
				return nil, err
			}
		}
	case models.Array:
		if len(fl) != len(val) {
			return nil, errors.NewCastingError(
				fmt.Sprintf("target %s declares %d fields, sequence has %d elements",
					rt, len(fl), len(val)), nil)
		}
		for i, f := range fl {
			if err := assign(inst.FieldByIndex(f.Index), val[i]); err != nil {
				return nil, err
			}
		}
	default:
		if !isScalar(v) {
			return nil, errors.NewCastingError(
				fmt.Sprintf("cannot cast %T to target %s", v, rt), nil)
		}
		if len(fl) != 1 {
			return nil, errors.NewCastingError(
				fmt.Sprintf("target %s declares %d fields, value is a scalar", rt, len(fl)), nil)
		}
		if err := assign(inst.FieldByIndex(fl[0].Index), v); err != nil {
			return nil, err
		}
	}
	return result(inst, wantPtr), nil
}

func result(inst reflect.Value, wantPtr bool) any {
	if wantPtr {
		return inst.Addr().Interface()
	}
	return inst.Interface()
}

func isScalar(v models.Value) bool {
	switch v.(type) {
	case nil, bool, string, int64, float64,
		uuid.UUID, time.Time, models.Date, models.TimeOfDay, complex128:
		return true
	}
	return false
}

// assign stores a decoded value into a struct field, allowing the
// numeric widenings a decoded int64/float64 needs to reach narrower
// Go field types.
func assign(dst reflect.Value, v models.Value) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	if isNumeric(rv.Kind()) && isNumeric(dst.Kind()) && rv.CanConvert(dst.Type()) {
		dst.Set(rv.Convert(dst.Type()))
		return nil
	}
	if dst.Kind() == reflect.Pointer && rv.Type().AssignableTo(dst.Type().Elem()) {
		p := reflect.New(dst.Type().Elem())
		p.Elem().Set(rv)
		dst.Set(p)
		return nil
	}
	return errors.NewCastingError(
		fmt.Sprintf("cannot assign %T to field of type %s", v, dst.Type()), nil)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
