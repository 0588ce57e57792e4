package attr

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// KindUndefined is the kind of the zero Value. It marks an attribute
	// that was referenced but not present in any context.
	KindUndefined Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
	KindList
)

// String returns the kind name for logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "timestamp"
	case KindList:
		return "list"
	default:
		return "undefined"
	}
}

// Value is a closed tagged variant over the attribute types the engine
// understands. Values are immutable; the zero Value is Undefined.
//
// All numbers are carried as float64, so integer and floating literals
// compare equal when they denote the same quantity.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
	list []Value
}

// Undefined is the sentinel for an absent attribute.
var Undefined = Value{}

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int constructs a numeric Value from an int.
func Int(i int) Value { return Value{kind: KindNumber, num: float64(i)} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time constructs a timestamp Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// List constructs a list Value from its elements.
func List(vs ...Value) Value { return Value{kind: KindList, list: vs} }

// FromAny converts a dynamically-typed value (as produced by YAML or
// JSON decoding) into a Value. It returns false for types with no
// attribute representation.
func FromAny(v any) (Value, bool) {
	switch x := v.(type) {
	case nil:
		return Undefined, true
	case string:
		return String(x), true
	case bool:
		return Bool(x), true
	case int:
		return Int(x), true
	case int64:
		return Number(float64(x)), true
	case float64:
		return Number(x), true
	case time.Time:
		return Time(x), true
	case []any:
		elems := make([]Value, 0, len(x))
		for _, e := range x {
			ev, ok := FromAny(e)
			if !ok {
				return Undefined, false
			}
			elems = append(elems, ev)
		}
		return List(elems...), true
	default:
		return Undefined, false
	}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// IsUndefined reports whether the value is the Undefined sentinel.
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsTime returns the timestamp payload.
func (v Value) AsTime() (time.Time, bool) { return v.t, v.kind == KindTime }

// AsList returns the list payload. The returned slice must not be
// mutated.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// Equal reports whether two values are equal. Undefined never equals
// anything, including another Undefined. Values of different kinds are
// unequal; lists compare element-wise.
func (v Value) Equal(o Value) bool {
	if v.kind == KindUndefined || o.kind == KindUndefined {
		return false
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindTime:
		return v.t.Equal(o.t)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two values: -1, 0 or +1. Only numbers and timestamps
// are ordered; any other pairing (including Undefined on either side)
// reports false.
func (v Value) Compare(o Value) (int, bool) {
	switch {
	case v.kind == KindNumber && o.kind == KindNumber:
		switch {
		case v.num < o.num:
			return -1, true
		case v.num > o.num:
			return 1, true
		default:
			return 0, true
		}
	case v.kind == KindTime && o.kind == KindTime:
		switch {
		case v.t.Before(o.t):
			return -1, true
		case v.t.After(o.t):
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("%q", v.str)
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindTime:
		return v.t.Format(time.RFC3339)
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<undefined>"
	}
}

// Map is a string-keyed attribute collection for one request context
// (subject, object or environment). The namespace is flat: keys may
// contain dots, and path resolution joins path segments back into a
// single key before lookup.
type Map map[string]Value

// Get returns the value at key, or Undefined if the key is absent.
func (m Map) Get(key string) Value {
	if m == nil {
		return Undefined
	}
	v, ok := m[key]
	if !ok {
		return Undefined
	}
	return v
}
