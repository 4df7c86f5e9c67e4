// Package colors provides TTY-aware colored output for the ipa CLI.
//
// Colors are automatically disabled when stdout is not a terminal. Use Init to
// override the detected setting from CLI flags.
package colors

import "github.com/fatih/color"

// Init overrides the auto-detected color setting; nil keeps it.
func Init(forceColor *bool) {
	if forceColor != nil {
		color.NoColor = !*forceColor
	}
}

// Enabled returns true if colors are currently enabled
func Enabled() bool {
	return !color.NoColor
}

// Key styles Info.plist keys in dumps
func Key() *color.Color { return color.New(color.Bold, color.FgHiBlue) }

// Custom styles keys that are not Apple documented keys
func Custom() *color.Color { return color.New(color.Bold, color.FgHiMagenta) }

// Label styles summary labels
func Label() *color.Color { return color.New(color.Bold) }

// Valid styles a passing validation result
func Valid() *color.Color { return color.New(color.Bold, color.FgGreen) }

// Invalid styles a failing validation result
func Invalid() *color.Color { return color.New(color.Bold, color.FgRed) }

// Faint styles secondary detail
func Faint() *color.Color { return color.New(color.Faint) }
