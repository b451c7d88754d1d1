package encoder

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonease/jsonease/internal/errors"
	"github.com/jsonease/jsonease/internal/models"
)

func TestEncode_Scalars(t *testing.T) {
	e := New(TierBasic)
	cases := []struct {
		name string
		v    any
		want string
	}{
		{"Null", nil, "null"},
		{"True", true, "true"},
		{"False", false, "false"},
		{"Int", int64(123), "123"},
		{"NegativeInt", -7, "-7"},
		{"Uint", uint16(9), "9"},
		{"Float", 123.0, "123.0"},
		{"FloatFraction", 0.5, "0.5"},
		{"NegativeFloat", -2.25, "-2.25"},
		{"String", "hello", `"hello"`},
		{"EmptyString", "", `""`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Encode(tc.v)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncode_FloatStaysFloat(t *testing.T) {
	// An integral float must not collapse into an integer token.
	e := New(TierBasic)
	got, err := e.Encode(float64(123))
	require.NoError(t, err)
	assert.Equal(t, "123.0", got)
}

func TestEncode_NonFiniteFloat(t *testing.T) {
	e := New(TierBasic)
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := e.Encode(f)
		require.Error(t, err)
		assert.True(t, errors.IsUnsupported(err))
	}
}

func TestEncode_StringEscapes(t *testing.T) {
	e := New(TierBasic)
	cases := []struct {
		v    string
		want string
	}{
		{`a"b`, `"a\"b"`},
		{`a\b`, `"a\\b"`},
		{"a\nb", `"a\nb"`},
		{"a\tb", `"a\tb"`},
		{"a\rb", `"a\rb"`},
		{"a\bb", `"a\bb"`},
		{"a\fb", `"a\fb"`},
		{"a\x01b", `"a\u0001b"`},
		{"a\x1fb", `"a\u001fb"`},
		{"héllo ☃", `"héllo ☃"`},
	}
	for _, tc := range cases {
		got, err := e.Encode(tc.v)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestEncode_Arrays(t *testing.T) {
	e := New(TierBasic)
	got, err := e.Encode(models.Array{int64(1), "two", true, nil})
	require.NoError(t, err)
	assert.Equal(t, `[1, "two", true, null]`, got)

	got, err = e.Encode(models.Array{})
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	got, err = e.Encode([]any{[]any{int64(1)}, []any{}})
	require.NoError(t, err)
	assert.Equal(t, "[[1], []]", got)
}

func TestEncode_ObjectInsertionOrder(t *testing.T) {
	e := New(TierBasic)
	o := models.NewObject()
	o.Set("z", int64(1))
	o.Set("a", int64(2))
	o.Set("m", models.Array{false})
	got, err := e.Encode(o)
	require.NoError(t, err)
	assert.Equal(t, `{"z": 1, "a": 2, "m": [false]}`, got)

	got, err = e.Encode(models.NewObject())
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestEncode_MapSortedKeys(t *testing.T) {
	e := New(TierBasic)
	got, err := e.Encode(map[string]any{"b": int64(2), "a": int64(1), "c": int64(3)})
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1, "b": 2, "c": 3}`, got)
}

func TestEncode_BasicTierRejectsExtendedKinds(t *testing.T) {
	e := New(TierBasic)
	for _, v := range []any{
		uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"),
		complex(1, 2),
		models.Range{},
		time.Now(),
		struct{ A int }{1},
	} {
		_, err := e.Encode(v)
		require.Error(t, err, "value %T", v)
		assert.True(t, errors.IsUnsupported(err), "value %T", v)
	}
}

func TestEncode_UUID(t *testing.T) {
	e := New(TierAdvanced)
	got, err := e.Encode(uuid.MustParse("f81d4fae-7dec-11d0-a765-00a0c91e6bf6"))
	require.NoError(t, err)
	assert.Equal(t, `"f81d4fae-7dec-11d0-a765-00a0c91e6bf6"`, got)
}

func TestEncode_Complex(t *testing.T) {
	e := New(TierAdvanced)
	got, err := e.Encode(complex(1.5, -2))
	require.NoError(t, err)
	assert.Equal(t, `{"real": 1.5, "imag": -2.0}`, got)
}

func TestEncode_Range(t *testing.T) {
	e := New(TierAdvanced)
	got, err := e.Encode(&models.Range{Start: int64(1), Stop: int64(10), Step: int64(2)})
	require.NoError(t, err)
	assert.Equal(t, `{"start": 1, "stop": 10, "step": 2}`, got)

	got, err = e.Encode(&models.Range{Stop: int64(5)})
	require.NoError(t, err)
	assert.Equal(t, `{"start": null, "stop": 5, "step": null}`, got)
}

func TestEncode_DateTime(t *testing.T) {
	e := New(TierAdvanced)
	cases := []struct {
		name string
		v    time.Time
		want string
	}{
		{
			"UTCBecomesZ",
			time.Date(2017, 11, 3, 10, 30, 0, 0, time.UTC),
			`"2017-11-03T10:30:00Z"`,
		},
		{
			"OffsetPreserved",
			time.Date(2017, 11, 3, 10, 30, 0, 0, time.FixedZone("", -5*3600)),
			`"2017-11-03T10:30:00-05:00"`,
		},
		{
			"SubSecondsTruncated",
			time.Date(2017, 11, 3, 10, 30, 0, 999999999, time.UTC),
			`"2017-11-03T10:30:00Z"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Encode(tc.v)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncode_DateAndTimeOfDay(t *testing.T) {
	e := New(TierAdvanced)
	got, err := e.Encode(models.Date{Year: 2017, Month: time.November, Day: 3})
	require.NoError(t, err)
	assert.Equal(t, `"2017-11-03"`, got)

	got, err = e.Encode(models.TimeOfDay{Hour: 10, Minute: 30, Second: 15, Microsecond: 123456})
	require.NoError(t, err)
	assert.Equal(t, `"10:30:15"`, got)
}

func TestEncode_GeneralizedContainers(t *testing.T) {
	e := New(TierAdvanced)
	got, err := e.Encode([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3]", got)

	got, err = e.Encode([2]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, `["a", "b"]`, got)

	got, err = e.Encode(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1, "b": 2}`, got)
}

func TestEncode_AdvancedTierRejectsStructs(t *testing.T) {
	e := New(TierAdvanced)
	_, err := e.Encode(struct{ A int }{1})
	require.Error(t, err)
	assert.True(t, errors.IsUnsupported(err))
}

func TestEncode_UnsupportedKinds(t *testing.T) {
	e := New(TierCustom)
	for _, v := range []any{func() {}, make(chan int)} {
		_, err := e.Encode(v)
		require.Error(t, err, "value %T", v)
		assert.True(t, errors.IsUnsupported(err), "value %T", v)
	}
}
