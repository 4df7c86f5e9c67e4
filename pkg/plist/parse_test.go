package plist

import (
	"errors"
	"math"
	"testing"

	"github.com/blacktop/go-plist"
)

func TestParseWithFormat(t *testing.T) {
	info := map[string]any{
		"CFBundleName":   "Foo",
		"UIDeviceFamily": []any{1, 2},
		"Nested":         map[string]any{"Enabled": true},
	}
	tests := []struct {
		name   string
		format int
	}{
		{name: "xml", format: plist.XMLFormat},
		{name: "binary", format: plist.BinaryFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := plist.Marshal(info, tt.format)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			tree, format, err := ParseWithFormat(data)
			if err != nil {
				t.Fatalf("ParseWithFormat() error = %v", err)
			}
			if format != plist.FormatNames[tt.format] {
				t.Errorf("ParseWithFormat() format = %q, want %q", format, plist.FormatNames[tt.format])
			}
			if name, _ := tree.GetString("CFBundleName"); name != "Foo" {
				t.Errorf("CFBundleName = %q, want Foo", name)
			}
			fam, _ := tree.Get("UIDeviceFamily")
			if fam.Len() != 2 {
				t.Errorf("UIDeviceFamily = %#v, want two elements", fam)
			}
			nested, _ := tree.Get("Nested")
			if d, ok := nested.AsDict(); !ok || !d.Has("Enabled") {
				t.Errorf("Nested = %#v, want a dict with Enabled", nested)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	arr, err := plist.Marshal([]string{"a"}, plist.XMLFormat)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if _, err := Parse(arr); !errors.Is(err, ErrNotDict) {
		t.Errorf("Parse(array) error = %v, want ErrNotDict", err)
	}
	if _, err := Parse([]byte("bplist00garbage")); err == nil {
		t.Error("Parse(garbage) should fail")
	}
}

func TestParse_LargeUnsigned(t *testing.T) {
	data, err := plist.Marshal(map[string]any{
		"CFBundleName": "Foo",
		"Big":          uint64(math.MaxUint64),
	}, plist.BinaryFormat)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	tree, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	v, _ := tree.Get("Big")
	if u, ok := v.AsUint(); !ok || u != math.MaxUint64 {
		t.Errorf("Big = %#v, want MaxUint64", v)
	}
	if name, _ := tree.GetString("CFBundleName"); name != "Foo" {
		t.Errorf("CFBundleName = %q, want Foo", name)
	}
}
