package ipa

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/blacktop/ipa/pkg/plist"
)

// FormatValue renders a value for a "key: value" dump line. Arrays and
// dictionaries are rendered as compact JSON.
func FormatValue(v plist.Value) string {
	switch v.Kind() {
	case plist.String:
		s, _ := v.AsString()
		return s
	case plist.Integer:
		if i, ok := v.AsInt(); ok {
			return strconv.FormatInt(i, 10)
		}
		u, _ := v.AsUint()
		return strconv.FormatUint(u, 10)
	case plist.Boolean:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case plist.Real:
		f, _ := v.AsReal()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case plist.Date:
		t, _ := v.AsDate()
		return t.UTC().Format(time.RFC3339)
	case plist.Data:
		d, _ := v.AsData()
		return base64.StdEncoding.EncodeToString(d)
	case plist.Array, plist.Dict:
		return compactJSON(v.Native())
	}
	return ""
}

func compactJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		// NaN and infinite reals have no JSON form
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// KeyStyle decorates a key before it is written; nil leaves keys untouched
type KeyStyle func(key string) string

// Dump writes one "key: value" line per key of tree in KeyRank order
func Dump(w io.Writer, tree *plist.Tree) error {
	return DumpStyled(w, tree, nil)
}

// DumpStyled is like Dump but passes every key through style
func DumpStyled(w io.Writer, tree *plist.Tree, style KeyStyle) error {
	for _, k := range SortKeys(tree.Keys()) {
		v, _ := tree.Get(k)
		key := k
		if style != nil {
			key = style(k)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", key, FormatValue(v)); err != nil {
			return err
		}
	}
	return nil
}

// DumpString returns the dump of tree without a trailing newline
func DumpString(tree *plist.Tree) string {
	var sb strings.Builder
	_ = Dump(&sb, tree) // writes to a strings.Builder cannot fail
	return strings.TrimSuffix(sb.String(), "\n")
}
