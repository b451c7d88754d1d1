package models

import (
	"fmt"
	"time"
)

// Value is a generic type to represent any decoded JSON value.
// Scalars are nil, bool, int64, float64 and string; containers are
// Array and *Object. The advanced tiers add uuid.UUID, time.Time,
// Date, TimeOfDay, complex128 and *Range on top of these.
type Value interface{}

// Array represents a JSON array, which is a slice of Values.
type Array []Value

// Object represents a JSON object. Unlike a plain Go map it remembers
// the order in which keys were inserted, so decode followed by encode
// reproduces the original key order.
type Object struct {
	keys  []string
	items map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{items: make(map[string]Value)}
}

// Set inserts or replaces the value for key. A replaced key keeps its
// original position.
func (o *Object) Set(key string, value Value) {
	if _, ok := o.items[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.items[key] = value
}

// Get returns the value for key and whether the key is present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.items[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.items[key]
	return ok
}

// Keys returns the object's keys in insertion order. The returned
// slice is shared; callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// HasExactly reports whether the object's key set is exactly the given
// names, independent of order. Used by the complex/range recognizers.
func (o *Object) HasExactly(names ...string) bool {
	if len(o.keys) != len(names) {
		return false
	}
	for _, name := range names {
		if _, ok := o.items[name]; !ok {
			return false
		}
	}
	return true
}

// Range represents a slice-like numeric range. A nil component is an
// open bound and round-trips as JSON null.
type Range struct {
	Start Value
	Stop  Value
	Step  Value
}

// Date is a calendar date without a time component. It round-trips as
// an ISO-8601 "2006-01-02" string.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ISO returns the ISO-8601 form of the date.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a wall-clock time without a date. Microseconds survive
// decoding but are truncated to whole seconds on encode.
type TimeOfDay struct {
	Hour        int
	Minute      int
	Second      int
	Microsecond int
}

// ISO returns the ISO-8601 form of the time at seconds precision.
func (t TimeOfDay) ISO() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
