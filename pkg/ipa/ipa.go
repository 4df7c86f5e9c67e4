// Package ipa validates iOS application archives (.ipa) and resolves
// descriptive metadata from their Info.plist.
package ipa

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/hashicorp/go-version"
	"golang.org/x/text/encoding"

	"github.com/blacktop/ipa/pkg/plist"
)

type options struct {
	name   string
	strict bool
	policy MissingFamilyPolicy
	logger log.Interface
}

// Option configures Open
type Option func(*options)

// WithStrict requires the top-level iTunesMetadata.plist entry
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithFamilyPolicy sets how a missing UIDeviceFamily key is resolved
func WithFamilyPolicy(p MissingFamilyPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the diagnostic sink; the default discards everything
func WithLogger(l log.Interface) Option {
	return func(o *options) { o.logger = l }
}

// WithName sets the archive name reported in errors
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// File is a validated .ipa and its decoded Info.plist
type File struct {
	archive Archive
	facts   Facts
	info    *plist.Tree
	format  string
	policy  MissingFamilyPolicy
	log     log.Interface
}

// Open validates a and decodes its Info.plist. On any failure a is closed
// before the error is returned.
func Open(a Archive, opts ...Option) (*File, error) {
	o := options{
		logger: &log.Logger{Handler: discard.Default, Level: log.FatalLevel},
	}
	for _, opt := range opts {
		opt(&o)
	}

	facts, err := ValidateArchive(a, o.strict)
	if err != nil {
		var iae *InvalidArchiveError
		if errors.As(err, &iae) {
			iae.Name = o.name
		}
		return nil, err
	}

	data, err := a.ReadEntry(facts.InfoPlistPath)
	if err != nil {
		return nil, closeOnError(a, fmt.Errorf("failed to read %s: %w", facts.InfoPlistPath, err))
	}
	info, format, err := plist.ParseWithFormat(data)
	if err != nil {
		return nil, closeOnError(a, fmt.Errorf("failed to parse %s: %w", facts.InfoPlistPath, err))
	}

	o.logger.WithFields(log.Fields{
		"app_dir": facts.AppDir,
		"format":  format,
		"keys":    info.Len(),
	}).Debug("Parsed Info.plist")

	return &File{
		archive: a,
		facts:   facts,
		info:    info,
		format:  format,
		policy:  o.policy,
		log:     o.logger,
	}, nil
}

// OpenFile opens and validates the .ipa at path
func OpenFile(path string, opts ...Option) (*File, error) {
	a, err := OpenZip(path)
	if err != nil {
		return nil, err
	}
	return Open(a, append([]Option{WithName(path)}, opts...)...)
}

// OpenURL opens and validates a remote .ipa
func OpenURL(ipaURL string, config *RemoteConfig, opts ...Option) (*File, error) {
	a, err := OpenRemote(ipaURL, config)
	if err != nil {
		return nil, err
	}
	return Open(a, append([]Option{WithName(ipaURL)}, opts...)...)
}

// Close closes the underlying archive
func (f *File) Close() error { return f.archive.Close() }

// Archive returns the underlying archive
func (f *File) Archive() Archive { return f.archive }

// Facts returns the structural facts found during validation
func (f *File) Facts() Facts { return f.facts }

// Info returns the decoded Info.plist
func (f *File) Info() *plist.Tree { return f.info }

// Format returns the Info.plist encoding (e.g. "XML" or "binary")
func (f *File) Format() string { return f.format }

// AppName returns the application name
func (f *File) AppName() (string, error) { return ResolveAppName(f.info) }

// AppVersion returns the application version string
func (f *File) AppVersion() (string, error) { return ResolveAppVersion(f.info) }

// BundleID returns CFBundleIdentifier
func (f *File) BundleID() string {
	id, _ := f.info.GetString("CFBundleIdentifier")
	return strings.TrimSpace(id)
}

// MinimumOSVersion returns the minimum supported OS version
func (f *File) MinimumOSVersion() (*version.Version, error) {
	return ResolveMinimumOSVersion(f.info)
}

// DeviceFamily returns the targeted device family
func (f *File) DeviceFamily() (DeviceFamily, error) {
	if !f.info.Has(DeviceFamilyKey) {
		f.log.WithField("policy", f.policy.String()).Warnf("%s not set, applying missing family policy", DeviceFamilyKey)
	}
	return ResolveDeviceFamily(f.info, f.policy)
}

func (f *File) isFamily(want DeviceFamily) (bool, error) {
	got, err := f.DeviceFamily()
	if err != nil {
		return false, err
	}
	return got == want, nil
}

// IsPhone reports whether the app only targets iPhone
func (f *File) IsPhone() (bool, error) { return f.isFamily(Phone) }

// IsPad reports whether the app only targets iPad
func (f *File) IsPad() (bool, error) { return f.isFamily(Pad) }

// IsUniversal reports whether the app targets more than one device family
func (f *File) IsUniversal() (bool, error) { return f.isFamily(Universal) }

// BinaryName guesses the executable name, or its archive path when full is set
func (f *File) BinaryName(full bool) (string, error) {
	name, fallback, err := resolveBinaryName(f.info, f.facts.AppDir, full)
	if fallback {
		f.log.WithField("app_dir", f.facts.AppDir).Debug("Using alternative method to guess binary name")
	}
	return name, err
}

// ExecutablePath returns the archive path of the executable
func (f *File) ExecutablePath() (string, error) {
	return ResolveExecutablePath(f.info, f.facts.AppDir)
}

// Filename returns "<name> <version>.ipa"; enc may be nil
func (f *File) Filename(enc encoding.Encoding) (string, error) {
	name, err := DeriveDistributionFilename(f.info, enc)
	if err != nil {
		var ee *EncodingError
		if errors.As(err, &ee) {
			f.log.WithError(err).WithField("bundle_id", f.BundleID()).Error("Encoding error with name or version key")
		}
		return "", err
	}
	return name, nil
}

// Dump writes every Info.plist key as a "key: value" line
func (f *File) Dump(w io.Writer) error { return Dump(w, f.info) }

func (f *File) String() string { return DumpString(f.info) }

// Summary is the resolved metadata of a File
type Summary struct {
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	BundleID     string `json:"bundle_id,omitempty" yaml:"bundle_id,omitempty"`
	DeviceFamily string `json:"device_family" yaml:"device_family"`
	MinimumOS    string `json:"minimum_os,omitempty" yaml:"minimum_os,omitempty"`
	Binary       string `json:"binary" yaml:"binary"`
	Filename     string `json:"filename" yaml:"filename"`
	AppDir       string `json:"app_dir" yaml:"app_dir"`
	Format       string `json:"format" yaml:"format"`
}

// Summary resolves all metadata, failing on the first resolver error. A
// missing or unparsable minimum OS version is left empty.
func (f *File) Summary(enc encoding.Encoding) (*Summary, error) {
	s := &Summary{
		BundleID: f.BundleID(),
		AppDir:   f.facts.AppDir,
		Format:   f.format,
	}
	var err error
	if s.Name, err = f.AppName(); err != nil {
		return nil, err
	}
	if s.Version, err = f.AppVersion(); err != nil {
		return nil, err
	}
	fam, err := f.DeviceFamily()
	if err != nil {
		return nil, err
	}
	s.DeviceFamily = fam.String()
	if s.Binary, err = f.ExecutablePath(); err != nil {
		return nil, err
	}
	if s.Filename, err = f.Filename(enc); err != nil {
		return nil, err
	}
	if v, err := f.MinimumOSVersion(); err == nil {
		s.MinimumOS = v.Original()
	} else {
		f.log.WithError(err).Debug("No minimum OS version")
	}
	return s, nil
}
