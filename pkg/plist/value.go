package plist

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Kind is the type tag of a Value
type Kind uint8

const (
	Invalid Kind = iota
	String
	Integer
	Boolean
	Real
	Array
	Dict
	Data
	Date
)

var kindNames = [...]string{
	Invalid: "invalid",
	String:  "string",
	Integer: "integer",
	Boolean: "boolean",
	Real:    "real",
	Array:   "array",
	Dict:    "dict",
	Data:    "data",
	Date:    "date",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a single decoded plist value. The zero Value is Invalid.
//
// A Value never changes after construction; accessors that return slices hand
// out copies.
type Value struct {
	kind Kind
	s    string
	i    int64
	u    uint64 // set with wide, for integers above math.MaxInt64
	wide bool
	f    float64
	b    bool
	arr  []Value
	dict *Tree
	data []byte
	date time.Time
}

func StringValue(s string) Value      { return Value{kind: String, s: s} }
func IntValue(i int64) Value          { return Value{kind: Integer, i: i} }
func BoolValue(b bool) Value          { return Value{kind: Boolean, b: b} }
func RealValue(f float64) Value       { return Value{kind: Real, f: f} }
func DateValue(t time.Time) Value     { return Value{kind: Date, date: t} }
func DataValue(d []byte) Value        { return Value{kind: Data, data: slices.Clone(d)} }
func ArrayValue(items ...Value) Value { return Value{kind: Array, arr: slices.Clone(items)} }
func DictValue(t *Tree) Value         { return Value{kind: Dict, dict: t} }

// UintValue returns an Integer; values above math.MaxInt64 are kept unsigned
func UintValue(u uint64) Value {
	if u <= math.MaxInt64 {
		return IntValue(int64(u))
	}
	return Value{kind: Integer, u: u, wide: true}
}

// Kind returns the type tag of v
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a value
func (v Value) IsValid() bool { return v.kind != Invalid }

// AsString returns the string held by v and whether v is a String
func (v Value) AsString() (string, bool) { return v.s, v.kind == String }

// AsInt returns the integer held by v and whether v is an Integer that fits
// in an int64
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == Integer && !v.wide }

// AsUint returns the integer held by v and whether v is a non-negative Integer
func (v Value) AsUint() (uint64, bool) {
	switch {
	case v.kind != Integer:
		return 0, false
	case v.wide:
		return v.u, true
	case v.i < 0:
		return 0, false
	}
	return uint64(v.i), true
}

// AsBool returns the boolean held by v and whether v is a Boolean
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == Boolean }

// AsReal returns the float held by v and whether v is a Real
func (v Value) AsReal() (float64, bool) { return v.f, v.kind == Real }

// AsDate returns the time held by v and whether v is a Date
func (v Value) AsDate() (time.Time, bool) { return v.date, v.kind == Date }

// AsData returns a copy of the bytes held by v and whether v is Data
func (v Value) AsData() ([]byte, bool) { return slices.Clone(v.data), v.kind == Data }

// AsArray returns a copy of the elements held by v and whether v is an Array
func (v Value) AsArray() ([]Value, bool) { return slices.Clone(v.arr), v.kind == Array }

// AsDict returns the nested tree held by v and whether v is a Dict
func (v Value) AsDict() (*Tree, bool) { return v.dict, v.kind == Dict }

// Len returns the number of elements of an Array or Dict, the length of a
// String or Data value and 0 for everything else.
func (v Value) Len() int {
	switch v.kind {
	case String:
		return len(v.s)
	case Data:
		return len(v.data)
	case Array:
		return len(v.arr)
	case Dict:
		return v.dict.Len()
	}
	return 0
}

// Native converts v back into plain Go values: string, int64, bool, float64,
// []byte, time.Time, []any and map[string]any.
func (v Value) Native() any {
	switch v.kind {
	case String:
		return v.s
	case Integer:
		if v.wide {
			return v.u
		}
		return v.i
	case Boolean:
		return v.b
	case Real:
		return v.f
	case Date:
		return v.date
	case Data:
		return slices.Clone(v.data)
	case Array:
		out := make([]any, 0, len(v.arr))
		for _, item := range v.arr {
			out = append(out, item.Native())
		}
		return out
	case Dict:
		return v.dict.Native()
	}
	return nil
}

// GoString implements fmt.GoStringer
func (v Value) GoString() string {
	return fmt.Sprintf("plist.Value{%s: %#v}", v.kind, v.Native())
}
