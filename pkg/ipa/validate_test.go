package ipa

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	type args struct {
		entries []string
		strict  bool
	}
	tests := []struct {
		name       string
		args       args
		want       Facts
		wantReason Reason
	}{
		{
			name: "valid",
			args: args{entries: []string{"Payload/", "Payload/Foo.app/", "Payload/Foo.app/Info.plist", "Payload/Foo.app/Foo"}},
			want: Facts{InfoPlistPath: "Payload/Foo.app/Info.plist", AppDir: "Foo.app"},
		},
		{
			name: "valid strict",
			args: args{entries: []string{"iTunesMetadata.plist", "Payload/Foo.app/Info.plist"}, strict: true},
			want: Facts{InfoPlistPath: "Payload/Foo.app/Info.plist", AppDir: "Foo.app", Strict: true},
		},
		{
			name: "unicode and spaces",
			args: args{entries: []string{"Payload/Café Bar-2_x.app/Info.plist"}},
			want: Facts{InfoPlistPath: "Payload/Café Bar-2_x.app/Info.plist", AppDir: "Café Bar-2_x.app"},
		},
		{
			name: "nested bundles ignored",
			args: args{entries: []string{
				"Payload/Foo.app/Info.plist",
				"Payload/Foo.app/PlugIns/Widget.appex/Info.plist",
				"Payload/Foo.app/Frameworks/Bar.app/Info.plist",
			}},
			want: Facts{InfoPlistPath: "Payload/Foo.app/Info.plist", AppDir: "Foo.app"},
		},
		{
			name:       "missing primary",
			args:       args{entries: []string{"Payload/Foo.app/Foo", "Payload/Info.plist", "Foo.app/Info.plist"}},
			wantReason: ReasonMissingPrimary,
		},
		{
			name:       "dotted app dir",
			args:       args{entries: []string{"Payload/com.foo.app/Info.plist"}},
			wantReason: ReasonMissingPrimary,
		},
		{
			name:       "duplicate primary",
			args:       args{entries: []string{"Payload/A.app/Info.plist", "Payload/B.app/Info.plist"}},
			wantReason: ReasonDuplicatePrimary,
		},
		{
			name:       "strict missing secondary",
			args:       args{entries: []string{"Payload/Foo.app/Info.plist"}, strict: true},
			wantReason: ReasonMissingSecondary,
		},
		{
			name:       "strict secondary must be top-level",
			args:       args{entries: []string{"Payload/Foo.app/Info.plist", "Payload/iTunesMetadata.plist"}, strict: true},
			wantReason: ReasonMissingSecondary,
		},
		{
			name:       "strict missing both",
			args:       args{entries: []string{"README"}, strict: true},
			wantReason: ReasonMissingBoth,
		},
		{
			name:       "empty archive",
			args:       args{},
			wantReason: ReasonMissingPrimary,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.args.entries, tt.args.strict)
			if tt.wantReason != 0 {
				var iae *InvalidArchiveError
				if !errors.As(err, &iae) {
					t.Fatalf("Validate() error = %v, want InvalidArchiveError", err)
				}
				if iae.Reason != tt.wantReason {
					t.Errorf("Validate() reason = %v, want %v", iae.Reason, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidate_DuplicateMatchesReported(t *testing.T) {
	entries := []string{"Payload/B.app/Info.plist", "Payload/A.app/Info.plist"}
	for range 3 {
		_, err := Validate(entries, false)
		var iae *InvalidArchiveError
		if !errors.As(err, &iae) {
			t.Fatalf("Validate() error = %v, want InvalidArchiveError", err)
		}
		if !reflect.DeepEqual(iae.Matches, entries) {
			t.Errorf("Matches = %v, want %v", iae.Matches, entries)
		}
	}
}

func TestValidate_AppDirFromPath(t *testing.T) {
	for _, dir := range []string{"A.app", "My App.app", "日本語.app", "x_y-z.app"} {
		facts, err := Validate([]string{"Payload/" + dir + "/Info.plist"}, false)
		if err != nil {
			t.Fatalf("Validate(%s) error = %v", dir, err)
		}
		if facts.AppDir != dir {
			t.Errorf("AppDir = %q, want %q", facts.AppDir, dir)
		}
	}
}

func TestValidateArchive_ClosesOnFailure(t *testing.T) {
	fa := &fakeArchive{entries: []string{"Payload/A.app/Info.plist", "Payload/B.app/Info.plist"}}
	if _, err := ValidateArchive(fa, false); err == nil {
		t.Fatal("ValidateArchive() should fail for duplicate primary entries")
	}
	if fa.closed != 1 {
		t.Errorf("archive closed %d times, want 1", fa.closed)
	}

	fa = &fakeArchive{entries: []string{"Payload/A.app/Info.plist"}}
	if _, err := ValidateArchive(fa, false); err != nil {
		t.Fatalf("ValidateArchive() error = %v", err)
	}
	if fa.closed != 0 {
		t.Error("archive should stay open after successful validation")
	}
}

func TestValidateArchive_ZipReadsFailAfterClose(t *testing.T) {
	data := buildIPA(t, entry{name: "Payload/Foo.app/Foo", data: []byte("bin")})
	a := openTestArchive(t, data)
	if _, err := ValidateArchive(a, false); err == nil {
		t.Fatal("ValidateArchive() should fail without Info.plist")
	}
	if _, err := a.ReadEntry("Payload/Foo.app/Foo"); !errors.Is(err, ErrArchiveClosed) {
		t.Errorf("ReadEntry() after failed validation error = %v, want ErrArchiveClosed", err)
	}
}

func TestInvalidArchiveError_Error(t *testing.T) {
	tests := []struct {
		err  *InvalidArchiveError
		want string
	}{
		{
			err:  &InvalidArchiveError{Reason: ReasonMissingPrimary},
			want: "not an iOS application distribution file: missing primary metadata (no Payload/*.app/Info.plist entry)",
		},
		{
			err:  &InvalidArchiveError{Name: "x.ipa", Reason: ReasonMissingSecondary},
			want: `file "x.ipa" not detected as iOS application distribution file: missing secondary metadata (no iTunesMetadata.plist entry)`,
		},
		{
			err:  &InvalidArchiveError{Reason: ReasonDuplicatePrimary, Matches: []string{"a", "b"}},
			want: "not an iOS application distribution file: duplicate primary metadata (a, b)",
		},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsInfoPlist(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Payload/Foo.app/Info.plist", true},
		{"Payload/My App-2_x.app/Info.plist", true},
		{"Payload/日本語.app/Info.plist", true},
		{"Payload/Foo.app/Frameworks/Bar.framework/Info.plist", false},
		{"Payload/com.foo.app/Info.plist", false},
		{"payload/Foo.app/Info.plist", false},
		{"Payload/.app/Info.plist", false},
		{"Payload/Foo.app/Info.plist.bak", false},
	}
	for _, tt := range tests {
		if got := IsInfoPlist(tt.name); got != tt.want {
			t.Errorf("IsInfoPlist(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
