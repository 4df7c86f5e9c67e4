package ipa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blacktop/ipa/pkg/plist"
)

// ErrArchiveClosed is returned when reading from an archive after Close
var ErrArchiveClosed = errors.New("ipa: archive is closed")

// Reason describes why an archive failed structural validation
type Reason int

const (
	ReasonMissingPrimary Reason = iota + 1
	ReasonDuplicatePrimary
	ReasonMissingSecondary
	ReasonMissingBoth
)

func (r Reason) String() string {
	switch r {
	case ReasonMissingPrimary:
		return "missing primary metadata"
	case ReasonDuplicatePrimary:
		return "duplicate primary metadata"
	case ReasonMissingSecondary:
		return "missing secondary metadata"
	case ReasonMissingBoth:
		return "missing both primary and secondary metadata"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// InvalidArchiveError is returned when an archive is not an iOS application
// distribution file. The archive handle has always been closed when this
// error is returned.
type InvalidArchiveError struct {
	Name    string   // archive name, if known
	Reason  Reason   // structural reason
	Matches []string // primary entries found (ReasonDuplicatePrimary)
}

func (e *InvalidArchiveError) Error() string {
	var sb strings.Builder
	if e.Name != "" {
		fmt.Fprintf(&sb, "file %q not detected as iOS application distribution file: ", e.Name)
	} else {
		sb.WriteString("not an iOS application distribution file: ")
	}
	sb.WriteString(e.Reason.String())
	switch e.Reason {
	case ReasonMissingPrimary:
		fmt.Fprintf(&sb, " (no %s entry)", infoPlistGlob)
	case ReasonMissingSecondary:
		fmt.Fprintf(&sb, " (no %s entry)", ITunesMetadataName)
	case ReasonMissingBoth:
		fmt.Fprintf(&sb, " (no %s or %s entry)", infoPlistGlob, ITunesMetadataName)
	case ReasonDuplicatePrimary:
		fmt.Fprintf(&sb, " (%s)", strings.Join(e.Matches, ", "))
	}
	return sb.String()
}

// AppNameNotFoundError is returned when none of the name keys hold a usable value
type AppNameNotFoundError struct {
	Keys []string
}

func (e *AppNameNotFoundError) Error() string {
	return fmt.Sprintf("application name cannot be found (tried %s)", strings.Join(e.Keys, ", "))
}

// AppVersionNotFoundError is returned when none of the version keys hold a usable value
type AppVersionNotFoundError struct {
	Keys []string
}

func (e *AppVersionNotFoundError) Error() string {
	return fmt.Sprintf("application version cannot be found (tried %s)", strings.Join(e.Keys, ", "))
}

// AppNameOrVersionError wraps the name or version failure that prevented a
// distribution filename from being composed.
type AppNameOrVersionError struct {
	Err error
}

func (e *AppNameOrVersionError) Error() string {
	return "could not determine an IPA file name: " + e.Err.Error()
}

func (e *AppNameOrVersionError) Unwrap() error { return e.Err }

// UnknownDeviceFamilyError carries the unrecognized UIDeviceFamily element
type UnknownDeviceFamilyError struct {
	Value plist.Value
}

func (e *UnknownDeviceFamilyError) Error() string {
	return fmt.Sprintf("unknown device family id (%s)", FormatValue(e.Value))
}

// MissingDeviceFamilyError is returned by ResolveDeviceFamily when the key is
// absent and the policy is MissingIsError.
type MissingDeviceFamilyError struct{}

func (e *MissingDeviceFamilyError) Error() string {
	return DeviceFamilyKey + " is missing or empty"
}

// EncodingError is returned when a value cannot be represented in the
// requested output encoding.
type EncodingError struct {
	Field    string // "name" or "version"
	Value    string
	Encoding string
	Err      error
}

func (e *EncodingError) Error() string {
	enc := e.Encoding
	if enc == "" {
		enc = "UTF-8"
	}
	return fmt.Sprintf("application %s %q cannot be encoded as %s: %v", e.Field, e.Value, enc, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// BinaryPathError is returned when the executable path cannot be determined
type BinaryPathError struct {
	Path   string
	Reason string
}

func (e *BinaryPathError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to locate app binary %s: %s", e.Path, e.Reason)
	}
	return "failed to locate app binary: " + e.Reason
}
