package ipa

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync/atomic"
)

// Archive is an opened application archive
type Archive interface {
	// Entries returns the entry paths in archive order
	Entries() []string
	// ReadEntry returns the contents of the named entry
	ReadEntry(name string) ([]byte, error)
	Close() error
}

// EntryOpener is implemented by archives that can stream an entry
type EntryOpener interface {
	OpenEntry(name string) (io.ReadCloser, error)
}

// ZipArchive is an Archive backed by a zip reader
type ZipArchive struct {
	zr     *zip.Reader
	closer io.Closer
	size   int64
	names  []string
	files  map[string]*zip.File
	closed atomic.Bool
}

// NewZipArchive wraps a zip reader. closer, if non-nil, is closed with the archive.
func NewZipArchive(zr *zip.Reader, size int64, closer io.Closer) *ZipArchive {
	z := &ZipArchive{
		zr:     zr,
		closer: closer,
		size:   size,
		names:  make([]string, 0, len(zr.File)),
		files:  make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		z.names = append(z.names, f.Name)
		if _, dup := z.files[f.Name]; !dup {
			z.files[f.Name] = f
		}
	}
	return z
}

// OpenZip opens the .ipa at path
func OpenZip(path string) (*ZipArchive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	zr, err := zip.NewReader(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open %s as zip: %w", path, err)
	}
	return NewZipArchive(zr, fi.Size(), f), nil
}

// Entries returns a copy of the entry names
func (z *ZipArchive) Entries() []string {
	out := make([]string, len(z.names))
	copy(out, z.names)
	return out
}

// Size returns the size of the underlying zip file in bytes
func (z *ZipArchive) Size() int64 { return z.size }

// OpenEntry opens the named entry for streaming
func (z *ZipArchive) OpenEntry(name string) (io.ReadCloser, error) {
	if z.closed.Load() {
		return nil, ErrArchiveClosed
	}
	f, ok := z.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s within zip: %w", name, err)
	}
	return rc, nil
}

// ReadEntry reads the named entry
func (z *ZipArchive) ReadEntry(name string) ([]byte, error) {
	rc, err := z.OpenEntry(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s within zip: %w", name, err)
	}
	return data, nil
}

// Close releases the archive. Subsequent reads fail with ErrArchiveClosed.
// Calling Close more than once is a no-op.
func (z *ZipArchive) Close() error {
	if z.closed.Swap(true) {
		return nil
	}
	if z.closer != nil {
		return z.closer.Close()
	}
	return nil
}
