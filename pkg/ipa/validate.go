package ipa

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// PayloadDir is the top-level directory holding the .app bundle
	PayloadDir = "Payload"
	// InfoPlistName is the name of the primary metadata entry
	InfoPlistName = "Info.plist"
	// ITunesMetadataName is the top-level secondary metadata entry required in strict mode
	ITunesMetadataName = "iTunesMetadata.plist"
	// AppSuffix is the extension of the application directory
	AppSuffix = ".app"

	infoPlistGlob = PayloadDir + "/*" + AppSuffix + "/" + InfoPlistName
)

// Unicode word characters, hyphens and whitespace, one path segment deep.
var infoPlistRE = regexp.MustCompile(`^Payload/[\p{L}\p{N}_\-\s\p{Z}]+\.app/Info\.plist$`)

// Facts are the structural facts derived from a valid archive's entry list
type Facts struct {
	InfoPlistPath string // e.g. Payload/Foo.app/Info.plist
	AppDir        string // e.g. Foo.app
	Strict        bool   // iTunesMetadata.plist was required
}

// IsInfoPlist reports whether name is shaped like the primary metadata entry
func IsInfoPlist(name string) bool {
	return infoPlistRE.MatchString(name)
}

// Validate classifies an archive's entry list.
//
// Exactly one entry must match Payload/<name>.app/Info.plist. When strict is
// set the top-level iTunesMetadata.plist must also be present.
func Validate(entries []string, strict bool) (Facts, error) {
	var matches []string
	var hasSecondary bool
	for _, name := range entries {
		if IsInfoPlist(name) {
			matches = append(matches, name)
		}
		if name == ITunesMetadataName {
			hasSecondary = true
		}
	}

	switch {
	case strict && !hasSecondary && len(matches) == 0:
		return Facts{}, &InvalidArchiveError{Reason: ReasonMissingBoth}
	case len(matches) == 0:
		return Facts{}, &InvalidArchiveError{Reason: ReasonMissingPrimary}
	case len(matches) > 1:
		return Facts{}, &InvalidArchiveError{Reason: ReasonDuplicatePrimary, Matches: matches}
	case strict && !hasSecondary:
		return Facts{}, &InvalidArchiveError{Reason: ReasonMissingSecondary}
	}

	parts := strings.Split(matches[0], "/")
	return Facts{
		InfoPlistPath: matches[0],
		AppDir:        parts[len(parts)-2],
		Strict:        strict,
	}, nil
}

// ValidateArchive validates an open archive and closes it if validation fails.
func ValidateArchive(a Archive, strict bool) (Facts, error) {
	facts, err := Validate(a.Entries(), strict)
	if err != nil {
		return Facts{}, closeOnError(a, err)
	}
	return facts, nil
}

func closeOnError(a Archive, err error) error {
	if cerr := a.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("failed to close archive: %w", cerr))
	}
	return err
}
