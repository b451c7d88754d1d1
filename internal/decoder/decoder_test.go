package decoder

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jsonease/jsonease/internal/errors"
	"github.com/jsonease/jsonease/internal/models"
)

func TestDecode_Literals(t *testing.T) {
	d := New(TierBasic)
	cases := []struct {
		name string
		s    string
		want models.Value
	}{
		{"Null", "null", nil},
		{"True", "true", true},
		{"False", "false", false},
		{"Int", "123", int64(123)},
		{"NegativeInt", "-7", int64(-7)},
		{"Zero", "0", int64(0)},
		{"Float", "123.0", float64(123)},
		{"NegativeFloat", "-0.5", -0.5},
		{"Exponent", "1e3", float64(1000)},
		{"String", `"hello"`, "hello"},
		{"EmptyString", `""`, ""},
		{"Escapes", `"a\"b\\c\nd"`, "a\"b\\c\nd"},
		{"EmptyArray", "[]", models.Array{}},
		{"EmptyObject", "{}", models.NewObject()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.Decode(tc.s)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v, wantErr nil", tc.s, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Decode(%q) = %#v, want %#v", tc.s, got, tc.want)
			}
		})
	}
}

func TestDecode_SurroundingWhitespace(t *testing.T) {
	d := New(TierBasic)
	for _, s := range []string{" null ", "\t\r\n true \n", "  [1, 2]  ", " \"x\" "} {
		if _, err := d.Decode(s); err != nil {
			t.Errorf("Decode(%q) error = %v, wantErr nil", s, err)
		}
	}
}

func TestDecode_IntFloatDistinction(t *testing.T) {
	d := New(TierBasic)
	v, err := d.Decode("123")
	if err != nil {
		t.Fatalf("Decode(123) error = %v", err)
	}
	if _, ok := v.(int64); !ok {
		t.Errorf("Decode(123) = %T, want int64", v)
	}
	v, err = d.Decode("123.0")
	if err != nil {
		t.Fatalf("Decode(123.0) error = %v", err)
	}
	if _, ok := v.(float64); !ok {
		t.Errorf("Decode(123.0) = %T, want float64", v)
	}
}

func TestDecode_Malformed(t *testing.T) {
	d := New(TierBasic)
	bad := []string{
		"",
		"   ",
		"nullx",
		"true false",
		"--0.123",
		"[1, 2",
		"[1 2]",
		`{"a": 1`,
		`{"a" 1}`,
		`{"a": }`,
		`{`,
		`[`,
		`"unterminated`,
		`xyz`,
		`[1,]x`,
	}
	for _, s := range bad {
		if _, err := d.Decode(s); err == nil {
			t.Errorf("Decode(%q), err = nil, want malformed-input error", s)
		} else if !errors.IsMalformed(err) {
			t.Errorf("Decode(%q), err = %v, want malformed-input error", s, err)
		}
	}
}

func TestDecode_NestedArrays(t *testing.T) {
	d := New(TierBasic)
	v, err := d.Decode("[[[[[[]]]]],[],[],[],[]]")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	arr, ok := v.(models.Array)
	if !ok {
		t.Fatalf("Decode() = %T, want models.Array", v)
	}
	if len(arr) != 5 {
		t.Fatalf("len = %d, want 5", len(arr))
	}
	depth := 0
	for inner := arr[0]; inner != nil; {
		a, ok := inner.(models.Array)
		if !ok {
			t.Fatalf("element at depth %d is %T, want models.Array", depth, inner)
		}
		depth++
		if len(a) == 0 {
			break
		}
		inner = a[0]
	}
	if depth != 5 {
		t.Errorf("first element depth = %d, want 5", depth)
	}
}

func TestDecode_ObjectKeyOrder(t *testing.T) {
	d := New(TierBasic)
	v, err := d.Decode(`{"a":1,"b":2}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	o, ok := v.(*models.Object)
	if !ok {
		t.Fatalf("Decode() = %T, want *models.Object", v)
	}
	if !reflect.DeepEqual(o.Keys(), []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", o.Keys())
	}
}

func TestDecode_ObjectKeyOrderLarge(t *testing.T) {
	d := New(TierBasic)
	v, err := d.Decode(`{"z": 1, "a": 2, "m": 3, "b": {"y": 1, "x": 2}}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	o := v.(*models.Object)
	if !reflect.DeepEqual(o.Keys(), []string{"z", "a", "m", "b"}) {
		t.Errorf("Keys() = %v, want [z a m b]", o.Keys())
	}
	nested, _ := o.Get("b")
	if !reflect.DeepEqual(nested.(*models.Object).Keys(), []string{"y", "x"}) {
		t.Errorf("nested Keys() = %v, want [y x]", nested.(*models.Object).Keys())
	}
}

func TestDecode_BasicTierLeavesStringsAlone(t *testing.T) {
	d := New(TierBasic)
	s := `"f81d4fae-7dec-11d0-a765-00a0c91e6bf6"`
	v, err := d.Decode(s)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, ok := v.(string); !ok {
		t.Errorf("basic tier decoded UUID string to %T, want string", v)
	}
}

func TestDecode_UUID(t *testing.T) {
	d := New(TierAdvanced)
	v, err := d.Decode(`"f81d4fae-7dec-11d0-a765-00a0c91e6bf6"`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		t.Fatalf("Decode() = %T, want uuid.UUID", v)
	}
	if id.String() != "f81d4fae-7dec-11d0-a765-00a0c91e6bf6" {
		t.Errorf("UUID = %s", id)
	}
}

func TestDecode_UUIDRejectsNearMisses(t *testing.T) {
	d := New(TierAdvanced)
	// Wrong version nibble (0) and wrong variant nibble (c): stays a string.
	for _, s := range []string{
		`"f81d4fae-7dec-01d0-a765-00a0c91e6bf6"`,
		`"f81d4fae-7dec-11d0-c765-00a0c91e6bf6"`,
		`"f81d4fae7dec11d0a76500a0c91e6bf6"`,
	} {
		v, err := d.Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", s, err)
		}
		if _, ok := v.(string); !ok {
			t.Errorf("Decode(%q) = %T, want string", s, v)
		}
	}
}

func TestDecode_DateTime(t *testing.T) {
	d := New(TierAdvanced)
	cases := []struct {
		s          string
		wantOffset int
	}{
		{`"2017-11-03T10:30:00Z"`, 0},
		{`"2017-11-03T10:30:00z"`, 0},
		{`"2017-11-03T10:30:00+00:00"`, 0},
		{`"2017-11-03T10:30:00-05:00"`, -5 * 3600},
		{`"2017-11-03T10:30:00+0530"`, 5*3600 + 30*60},
		{`"2017-11-03T10:30:00+05"`, 5 * 3600},
		{`"2017-11-03 10:30:00Z"`, 0},
	}
	for _, tc := range cases {
		v, err := d.Decode(tc.s)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", tc.s, err)
		}
		dt, ok := v.(time.Time)
		if !ok {
			t.Fatalf("Decode(%q) = %T, want time.Time", tc.s, v)
		}
		if dt.Year() != 2017 || dt.Month() != time.November || dt.Day() != 3 {
			t.Errorf("Decode(%q) date = %v", tc.s, dt)
		}
		if dt.Hour() != 10 || dt.Minute() != 30 || dt.Second() != 0 {
			t.Errorf("Decode(%q) clock = %v", tc.s, dt)
		}
		if _, off := dt.Zone(); off != tc.wantOffset {
			t.Errorf("Decode(%q) offset = %d, want %d", tc.s, off, tc.wantOffset)
		}
	}
}

func TestDecode_DateTimeMicroseconds(t *testing.T) {
	d := New(TierAdvanced)
	v, err := d.Decode(`"2017-11-03T10:30:00.25Z"`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	dt := v.(time.Time)
	if dt.Nanosecond() != 250000*1000 {
		t.Errorf("Nanosecond() = %d, want 250000000", dt.Nanosecond())
	}
}

func TestDecode_Date(t *testing.T) {
	d := New(TierAdvanced)
	v, err := d.Decode(`"2017-11-03"`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := models.Date{Year: 2017, Month: time.November, Day: 3}
	if v != want {
		t.Errorf("Decode() = %#v, want %#v", v, want)
	}
}

func TestDecode_TimeOfDay(t *testing.T) {
	d := New(TierAdvanced)
	cases := []struct {
		s    string
		want models.TimeOfDay
	}{
		{`"10:30"`, models.TimeOfDay{Hour: 10, Minute: 30}},
		{`"23:59:59"`, models.TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
		{`"01:02:03.5"`, models.TimeOfDay{Hour: 1, Minute: 2, Second: 3, Microsecond: 500000}},
	}
	for _, tc := range cases {
		v, err := d.Decode(tc.s)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", tc.s, err)
		}
		if v != tc.want {
			t.Errorf("Decode(%q) = %#v, want %#v", tc.s, v, tc.want)
		}
	}
}

func TestDecode_NonMatchingStringsStayStrings(t *testing.T) {
	d := New(TierAdvanced)
	for _, s := range []string{`"2017-13-03"`, `"25:00"`, `"hello"`, `"2017-11-03x"`} {
		v, err := d.Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", s, err)
		}
		if _, ok := v.(string); !ok {
			t.Errorf("Decode(%q) = %T, want string", s, v)
		}
	}
}

func TestDecode_Complex(t *testing.T) {
	d := New(TierAdvanced)
	v, err := d.Decode(`{"real": 1.5, "imag": -2}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	c, ok := v.(complex128)
	if !ok {
		t.Fatalf("Decode() = %T, want complex128", v)
	}
	if real(c) != 1.5 || imag(c) != -2 {
		t.Errorf("Decode() = %v", c)
	}
}

func TestDecode_ComplexKeyOrderIndependent(t *testing.T) {
	d := New(TierAdvanced)
	v, err := d.Decode(`{"imag": 2, "real": 1}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if c, ok := v.(complex128); !ok || c != complex(1, 2) {
		t.Errorf("Decode() = %#v, want (1+2i)", v)
	}
}

func TestDecode_ComplexNullComponent(t *testing.T) {
	d := New(TierAdvanced)
	v, err := d.Decode(`{"real": null, "imag": 3}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if c, ok := v.(complex128); !ok || c != complex(0, 3) {
		t.Errorf("Decode() = %#v, want (0+3i)", v)
	}
}

func TestDecode_Range(t *testing.T) {
	d := New(TierAdvanced)
	v, err := d.Decode(`{"start": 1, "stop": 10, "step": 2}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	r, ok := v.(*models.Range)
	if !ok {
		t.Fatalf("Decode() = %T, want *models.Range", v)
	}
	want := &models.Range{Start: int64(1), Stop: int64(10), Step: int64(2)}
	if !reflect.DeepEqual(r, want) {
		t.Errorf("Decode() = %#v, want %#v", r, want)
	}
}

func TestDecode_RangeOpenBounds(t *testing.T) {
	d := New(TierAdvanced)
	v, err := d.Decode(`{"start": null, "stop": 5, "step": null}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	r := v.(*models.Range)
	if r.Start != nil || r.Stop != int64(5) || r.Step != nil {
		t.Errorf("Decode() = %#v", r)
	}
}

func TestDecode_KeySetRecognitionRequiresExactSet(t *testing.T) {
	d := New(TierAdvanced)
	cases := []string{
		`{"real": 1, "imag": 2, "extra": 3}`,
		`{"real": 1}`,
		`{"start": 1, "stop": 2}`,
		`{"start": 1, "stop": 2, "step": 3, "more": 4}`,
	}
	for _, s := range cases {
		v, err := d.Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", s, err)
		}
		if _, ok := v.(*models.Object); !ok {
			t.Errorf("Decode(%q) = %T, want *models.Object", s, v)
		}
	}
}

func TestDecode_MaxDepth(t *testing.T) {
	d := New(TierBasic).WithMaxDepth(3)
	if _, err := d.Decode("[[[1]]]"); err != nil {
		t.Errorf("Decode at limit, err = %v, want nil", err)
	}
	_, err := d.Decode("[[[[1]]]]")
	if err == nil {
		t.Fatalf("Decode beyond limit, err = nil, want error")
	}
	if !strings.Contains(err.Error(), "nesting too deep") {
		t.Errorf("err = %v, want nesting too deep", err)
	}
}

func TestDecode_DuplicateKeysKeepFirstPosition(t *testing.T) {
	d := New(TierBasic)
	v, err := d.Decode(`{"a": 1, "b": 2, "a": 3}`)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	o := v.(*models.Object)
	if !reflect.DeepEqual(o.Keys(), []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", o.Keys())
	}
	if got, _ := o.Get("a"); got != int64(3) {
		t.Errorf("a = %v, want 3", got)
	}
}
