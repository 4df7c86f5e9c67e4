package plist

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/blacktop/go-plist"
)

func TestNewTree(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name     string
		raw      any
		wantKind Kind
		want     any
		wantErr  bool
	}{
		{name: "string", raw: "x", wantKind: String, want: "x"},
		{name: "bool", raw: true, wantKind: Boolean, want: true},
		{name: "int", raw: 7, wantKind: Integer, want: int64(7)},
		{name: "int8", raw: int8(-3), wantKind: Integer, want: int64(-3)},
		{name: "uint16", raw: uint16(9), wantKind: Integer, want: int64(9)},
		{name: "uint64", raw: uint64(math.MaxInt64), wantKind: Integer, want: int64(math.MaxInt64)},
		{name: "uint64 above int64", raw: uint64(math.MaxUint64), wantKind: Integer, want: uint64(math.MaxUint64)},
		{name: "uint above int64", raw: uint(math.MaxInt64) + 1, wantKind: Integer, want: uint64(math.MaxInt64) + 1},
		{name: "uid", raw: plist.UID(4), wantKind: Integer, want: int64(4)},
		{name: "float32", raw: float32(0.5), wantKind: Real, want: 0.5},
		{name: "data", raw: []byte{1, 2}, wantKind: Data, want: []byte{1, 2}},
		{name: "date", raw: when, wantKind: Date, want: when},
		{name: "array", raw: []any{"a", 1}, wantKind: Array, want: []any{"a", int64(1)}},
		{name: "strings", raw: []string{"a", "b"}, wantKind: Array, want: []any{"a", "b"}},
		{name: "dict", raw: map[string]any{"k": "v"}, wantKind: Dict, want: map[string]any{"k": "v"}},
		{name: "legacy dict", raw: map[any]any{"k": 1}, wantKind: Dict, want: map[string]any{"k": int64(1)}},
		{name: "legacy non-string key", raw: map[any]any{1: "v"}, wantErr: true},
		{name: "nested error", raw: []any{"ok", struct{}{}}, wantErr: true},
		{name: "nil", raw: nil, wantErr: true},
		{name: "unsupported", raw: complex(1, 2), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewTree(map[string]any{"key": tt.raw})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTree() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			v, ok := tree.Get("key")
			if !ok {
				t.Fatal("Get() missing key")
			}
			if v.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.wantKind)
			}
			if got := v.Native(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Native() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMustTree_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTree() did not panic")
		}
	}()
	MustTree(map[string]any{"bad": nil})
}

func TestTree_NilSafe(t *testing.T) {
	var tree *Tree
	if tree.Len() != 0 || tree.Has("x") || tree.Keys() != nil {
		t.Error("nil tree should be empty")
	}
	if _, ok := tree.GetString("x"); ok {
		t.Error("GetString() on nil tree reported a value")
	}
	if got := tree.Native(); len(got) != 0 {
		t.Errorf("Native() = %v, want empty map", got)
	}
}

func TestTree_Accessors(t *testing.T) {
	tree := MustTree(map[string]any{
		"CFBundleName":    "Foo",
		"CFBundleVersion": 3,
		"b":               "x",
		"a":               "y",
	})

	if got, want := tree.Keys(), []string{"CFBundleName", "CFBundleVersion", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if _, ok := tree.GetString("CFBundleVersion"); ok {
		t.Error("GetString() should not coerce integers")
	}
	if s, ok := tree.GetString("CFBundleName"); !ok || s != "Foo" {
		t.Errorf("GetString(CFBundleName) = %q, %v; want Foo", s, ok)
	}
	if tree.Has("CFBundleDisplayName") {
		t.Error("Has() found a missing key")
	}
}

func TestValue_Accessors(t *testing.T) {
	data := []byte("abc")
	v := DataValue(data)
	data[0] = 'z'
	got, ok := v.AsData()
	if !ok || string(got) != "abc" {
		t.Errorf("AsData() = %q, %v; want copy of abc", got, ok)
	}
	got[1] = 'z'
	if again, _ := v.AsData(); string(again) != "abc" {
		t.Errorf("AsData() result aliases value storage: %q", again)
	}

	if _, ok := StringValue("1").AsInt(); ok {
		t.Error("AsInt() on string should not succeed")
	}
	if (Value{}).IsValid() {
		t.Error("zero Value should be invalid")
	}

	tests := []struct {
		v    Value
		want int
	}{
		{StringValue("abcd"), 4},
		{ArrayValue(IntValue(1), IntValue(2)), 2},
		{DictValue(MustTree(map[string]any{"a": 1})), 1},
		{IntValue(100), 0},
	}
	for _, tt := range tests {
		if got := tt.v.Len(); got != tt.want {
			t.Errorf("%#v.Len() = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	if got := Dict.String(); got != "dict" {
		t.Errorf("Dict.String() = %q", got)
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}

func TestValue_Unsigned(t *testing.T) {
	big := UintValue(math.MaxUint64)
	if big.Kind() != Integer {
		t.Fatalf("Kind() = %v, want integer", big.Kind())
	}
	if _, ok := big.AsInt(); ok {
		t.Error("AsInt() should not report a value above MaxInt64")
	}
	if u, ok := big.AsUint(); !ok || u != math.MaxUint64 {
		t.Errorf("AsUint() = %d, %v; want MaxUint64", u, ok)
	}

	small := UintValue(7)
	if i, ok := small.AsInt(); !ok || i != 7 {
		t.Errorf("AsInt() = %d, %v; want 7", i, ok)
	}
	if !reflect.DeepEqual(small, IntValue(7)) {
		t.Errorf("UintValue(7) = %#v, want IntValue(7)", small)
	}
	if _, ok := IntValue(-1).AsUint(); ok {
		t.Error("AsUint() on a negative integer should not succeed")
	}
	if _, ok := StringValue("1").AsUint(); ok {
		t.Error("AsUint() on a string should not succeed")
	}
}
