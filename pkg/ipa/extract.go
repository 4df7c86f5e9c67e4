package ipa

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// ExtractBinary writes the application executable into the dest directory and
// returns the path of the written file.
func (f *File) ExtractBinary(dest string) (string, error) {
	exe, err := f.ExecutablePath()
	if err != nil {
		return "", err
	}

	rc, err := openEntry(f.archive, exe)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &BinaryPathError{Path: exe, Reason: "entry not found in archive"}
		}
		return "", err
	}
	defer rc.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	out := filepath.Join(dest, path.Base(exe))
	w, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", out, err)
	}
	if _, err := io.Copy(w, rc); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", out, err)
	}

	f.log.WithField("path", out).Debug("Extracted app binary")
	return out, nil
}

func openEntry(a Archive, name string) (io.ReadCloser, error) {
	if o, ok := a.(EntryOpener); ok {
		return o.OpenEntry(name)
	}
	data, err := a.ReadEntry(name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
