package plist

import (
	"errors"
	"fmt"

	"github.com/blacktop/go-plist"
)

// ErrNotDict is returned when the root of a plist is not a dictionary
var ErrNotDict = errors.New("plist: root object is not a dictionary")

// Parse decodes an XML, binary or OpenStep plist whose root is a dictionary
func Parse(data []byte) (*Tree, error) {
	t, _, err := ParseWithFormat(data)
	return t, err
}

// ParseWithFormat is like Parse but also returns the name of the detected
// plist format (e.g. "XML" or "binary").
func ParseWithFormat(data []byte) (*Tree, string, error) {
	var root any
	format, err := plist.Unmarshal(data, &root)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode plist: %w", err)
	}
	dict, ok := root.(map[string]any)
	if !ok {
		return nil, "", fmt.Errorf("%w: got %T", ErrNotDict, root)
	}
	t, err := NewTree(dict)
	if err != nil {
		return nil, "", fmt.Errorf("failed to convert plist: %w", err)
	}
	return t, plist.FormatNames[format], nil
}
