package ipa

import (
	"cmp"
	"slices"
	"strings"
)

type keyRule struct {
	name  string
	exact bool
}

// keyRules puts Apple's documented Info.plist keys ahead of custom keys.
// A key's rank is the index of the first rule it matches.
var keyRules = []keyRule{
	{name: "AP"},  // APInstallerURL
	{name: "ATS"}, // ATSApplicationFontsPath
	{name: "BuildMachineOSBuild", exact: true},
	{name: "CF"},
	{name: "CS"}, // CSResourcesFileMapped
	{name: "DT"},
	{name: "GK"}, // GameKit
	{name: "LS"}, // Launch Services
	{name: "MinimumOSVersion", exact: true},
	{name: "MK"},
	{name: "NS"},
	{name: "QL"}, // QLSandboxUnsupported
	{name: "QuartzGLEnable", exact: true},
	{name: "UI"},
	{name: "UT"}, // UTExportedTypeDeclarations
}

// rank of keys matching no rule
var unranked = len(keyRules)

func (r keyRule) match(key string) bool {
	if r.exact {
		return key == r.name
	}
	return strings.HasPrefix(key, r.name)
}

// KeyRank returns the priority bucket of an Info.plist key; lower sorts first
func KeyRank(key string) int {
	for i, r := range keyRules {
		if r.match(key) {
			return i
		}
	}
	return unranked
}

// IsCustomKey reports whether key matches none of the Apple key rules
func IsCustomKey(key string) bool {
	return KeyRank(key) == unranked
}

// CompareKeys orders keys by rank and then by byte-wise string order
func CompareKeys(a, b string) int {
	if c := cmp.Compare(KeyRank(a), KeyRank(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// SortKeys returns a sorted copy of keys
func SortKeys(keys []string) []string {
	out := slices.Clone(keys)
	slices.SortStableFunc(out, CompareKeys)
	return out
}
