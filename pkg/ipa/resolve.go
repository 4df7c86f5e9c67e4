package ipa

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-version"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/blacktop/ipa/pkg/plist"
)

// Keys tried, in order, when resolving the application name and version
var (
	AppNameKeys    = []string{"CFBundleDisplayName", "CFBundleName", "CFBundleExecutable", "CFBundleIdentifier"}
	AppVersionKeys = []string{"CFBundleShortVersionString", "CFBundleVersion"}
	MinimumOSKeys  = []string{"MinimumOSVersion", "LSMinimumSystemVersion"}
)

const (
	bundleDisplayNameKey = "bundleDisplayName"
	fileExtensionKey     = "fileExtension"
	executableKey        = "CFBundleExecutable"
)

// firstString returns the first of keys holding a string that is non-empty
// once surrounding whitespace is removed.
func firstString(tree *plist.Tree, keys []string) (string, bool) {
	for _, k := range keys {
		s, ok := tree.GetString(k)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
	}
	return "", false
}

// ResolveAppName returns the application's display name
func ResolveAppName(tree *plist.Tree) (string, error) {
	if name, ok := firstString(tree, AppNameKeys); ok {
		return name, nil
	}
	return "", &AppNameNotFoundError{Keys: AppNameKeys}
}

// ResolveAppVersion returns the application's version string
func ResolveAppVersion(tree *plist.Tree) (string, error) {
	if ver, ok := firstString(tree, AppVersionKeys); ok {
		return ver, nil
	}
	return "", &AppVersionNotFoundError{Keys: AppVersionKeys}
}

// ResolveMinimumOSVersion parses the minimum OS version the application requires
func ResolveMinimumOSVersion(tree *plist.Tree) (*version.Version, error) {
	s, ok := firstString(tree, MinimumOSKeys)
	if !ok {
		return nil, fmt.Errorf("minimum OS version cannot be found (tried %s)", strings.Join(MinimumOSKeys, ", "))
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse minimum OS version %q: %w", s, err)
	}
	return v, nil
}

// ResolveBinaryName guesses the name of the application's executable.
//
// The bundleDisplayName key is used when present; otherwise the name is the
// application directory without its .app suffix. With full set the path of
// the executable inside the archive is returned instead.
func ResolveBinaryName(tree *plist.Tree, appDir string, full bool) (string, error) {
	name, _, err := resolveBinaryName(tree, appDir, full)
	return name, err
}

func resolveBinaryName(tree *plist.Tree, appDir string, full bool) (string, bool, error) {
	if base, ok := tree.GetString(bundleDisplayNameKey); ok && strings.TrimSpace(base) != "" {
		if !full {
			return base, false, nil
		}
		ext, ok := tree.GetString(fileExtensionKey)
		if !ok || ext == "" {
			return "", false, &BinaryPathError{Reason: fmt.Sprintf("%s is set but %s is missing", bundleDisplayNameKey, fileExtensionKey)}
		}
		return PayloadDir + "/" + base + "." + ext + "/" + base, false, nil
	}

	if !strings.HasSuffix(appDir, AppSuffix) || len(appDir) == len(AppSuffix) {
		return "", true, &BinaryPathError{Reason: fmt.Sprintf("application directory %q does not end in %s", appDir, AppSuffix)}
	}
	base := appDir[:len(appDir)-len(AppSuffix)]
	if full {
		return PayloadDir + "/" + appDir + "/" + base, true, nil
	}
	return base, true, nil
}

// ResolveExecutablePath returns the archive path of the application's
// executable, preferring CFBundleExecutable over the ResolveBinaryName guess.
func ResolveExecutablePath(tree *plist.Tree, appDir string) (string, error) {
	if exe, ok := tree.GetString(executableKey); ok && isBareName(exe) {
		return PayloadDir + "/" + appDir + "/" + exe, nil
	}
	return ResolveBinaryName(tree, appDir, true)
}

// isBareName reports whether name is a single path element inside the app dir
func isBareName(name string) bool {
	switch strings.TrimSpace(name) {
	case "", ".", "..":
		return false
	}
	return !strings.Contains(name, "/")
}

// DeriveDistributionFilename returns the name iTunes would give the archive:
// "<name> <version>.ipa".
//
// Both parts must be valid UTF-8 and, when enc is non-nil, representable in
// enc; otherwise an EncodingError is returned.
func DeriveDistributionFilename(tree *plist.Tree, enc encoding.Encoding) (string, error) {
	name, err := ResolveAppName(tree)
	if err != nil {
		return "", &AppNameOrVersionError{Err: err}
	}
	ver, err := ResolveAppVersion(tree)
	if err != nil {
		return "", &AppNameOrVersionError{Err: err}
	}
	if err := checkEncodable("name", name, enc); err != nil {
		return "", err
	}
	if err := checkEncodable("version", ver, enc); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s.ipa", name, ver), nil
}

var errInvalidUTF8 = errors.New("invalid UTF-8")

func checkEncodable(field, s string, enc encoding.Encoding) error {
	if !utf8.ValidString(s) {
		return &EncodingError{Field: field, Value: s, Err: errInvalidUTF8}
	}
	if enc == nil {
		return nil
	}
	if _, err := enc.NewEncoder().String(s); err != nil {
		return &EncodingError{Field: field, Value: s, Encoding: encodingName(enc), Err: err}
	}
	return nil
}

func encodingName(enc encoding.Encoding) string {
	if name, err := ianaindex.IANA.Name(enc); err == nil {
		return name
	}
	return fmt.Sprint(enc)
}
