package plist

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/blacktop/go-plist"
)

// Tree is a decoded plist dictionary
type Tree struct {
	m map[string]Value
}

// NewTree builds a Tree from a caller supplied mapping.
//
// Values may be any of the Go types produced by a plist decoder (string, all
// int/uint widths, float32/64, bool, []byte, time.Time, plist.UID) as well as
// []any, []string, map[string]any and map[any]any with string keys (as
// produced by generic YAML decoders).
func NewTree(m map[string]any) (*Tree, error) {
	t := &Tree{m: make(map[string]Value, len(m))}
	for k, raw := range m {
		v, err := convert(raw)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		t.m[k] = v
	}
	return t, nil
}

// MustTree is like NewTree but panics on error
func MustTree(m map[string]any) *Tree {
	t, err := NewTree(m)
	if err != nil {
		panic(err)
	}
	return t
}

func newLegacyTree(m map[any]any) (*Tree, error) {
	t := &Tree{m: make(map[string]Value, len(m))}
	for rk, raw := range m {
		k, ok := rk.(string)
		if !ok {
			return nil, fmt.Errorf("unsupported key type %T", rk)
		}
		v, err := convert(raw)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		t.m[k] = v
	}
	return t, nil
}

func convert(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case *Tree:
		return DictValue(v), nil
	case string:
		return StringValue(v), nil
	case bool:
		return BoolValue(v), nil
	case int:
		return IntValue(int64(v)), nil
	case int8:
		return IntValue(int64(v)), nil
	case int16:
		return IntValue(int64(v)), nil
	case int32:
		return IntValue(int64(v)), nil
	case int64:
		return IntValue(v), nil
	case uint:
		return UintValue(uint64(v)), nil
	case uint8:
		return IntValue(int64(v)), nil
	case uint16:
		return IntValue(int64(v)), nil
	case uint32:
		return IntValue(int64(v)), nil
	case uint64:
		return UintValue(v), nil
	case plist.UID:
		return UintValue(uint64(v)), nil
	case float32:
		return RealValue(float64(v)), nil
	case float64:
		return RealValue(v), nil
	case []byte:
		return DataValue(v), nil
	case time.Time:
		return DateValue(v), nil
	case []any:
		items := make([]Value, 0, len(v))
		for i, elem := range v {
			item, err := convert(elem)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return Value{kind: Array, arr: items}, nil
	case []string:
		items := make([]Value, 0, len(v))
		for _, elem := range v {
			items = append(items, StringValue(elem))
		}
		return Value{kind: Array, arr: items}, nil
	case map[string]any:
		t, err := NewTree(v)
		if err != nil {
			return Value{}, err
		}
		return DictValue(t), nil
	case map[any]any:
		t, err := newLegacyTree(v)
		if err != nil {
			return Value{}, err
		}
		return DictValue(t), nil
	case nil:
		return Value{}, errors.New("nil value")
	}
	return Value{}, fmt.Errorf("unsupported value type %T", raw)
}

// Get returns the value stored under key
func (t *Tree) Get(key string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.m[key]
	return v, ok
}

// Has reports whether key is present
func (t *Tree) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// GetString returns the value stored under key if it is a String
func (t *Tree) GetString(key string) (string, bool) {
	v, ok := t.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Len returns the number of keys
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.m)
}

// Keys returns the keys in lexical order
func (t *Tree) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.m))
	for k := range t.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Native converts the tree back into a map[string]any
func (t *Tree) Native() map[string]any {
	out := make(map[string]any, t.Len())
	if t == nil {
		return out
	}
	for k, v := range t.m {
		out[k] = v.Native()
	}
	return out
}
