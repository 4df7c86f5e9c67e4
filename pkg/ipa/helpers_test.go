package ipa

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io/fs"
	"testing"

	gplist "github.com/blacktop/go-plist"
)

type entry struct {
	name string
	data []byte
}

func buildIPA(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatalf("failed to write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

func openTestArchive(t *testing.T, data []byte) *ZipArchive {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to read test zip: %v", err)
	}
	return NewZipArchive(zr, int64(len(data)), nil)
}

func marshalPlist(t *testing.T, m map[string]any, format int) []byte {
	t.Helper()
	data, err := gplist.Marshal(m, format)
	if err != nil {
		t.Fatalf("failed to marshal plist: %v", err)
	}
	return data
}

// appIPA returns a minimal valid archive for an app directory
func appIPA(t *testing.T, appDir string, info map[string]any, extra ...entry) []byte {
	t.Helper()
	entries := []entry{
		{name: "Payload/"},
		{name: "Payload/" + appDir + "/"},
		{name: "Payload/" + appDir + "/Info.plist", data: marshalPlist(t, info, gplist.XMLFormat)},
		{name: ITunesMetadataName, data: marshalPlist(t, map[string]any{"itemName": "x"}, gplist.XMLFormat)},
	}
	return buildIPA(t, append(entries, extra...)...)
}

// fakeArchive records Close calls
type fakeArchive struct {
	entries []string
	files   map[string][]byte
	closed  int
}

func (f *fakeArchive) Entries() []string { return f.entries }

func (f *fakeArchive) ReadEntry(name string) ([]byte, error) {
	if f.closed > 0 {
		return nil, ErrArchiveClosed
	}
	data, ok := f.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return data, nil
}

func (f *fakeArchive) Close() error {
	f.closed++
	return nil
}
