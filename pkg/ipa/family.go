package ipa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blacktop/ipa/pkg/plist"
)

// DeviceFamilyKey is the Info.plist key listing the supported device families
const DeviceFamilyKey = "UIDeviceFamily"

// DeviceFamily is the hardware class an application targets
type DeviceFamily int

const (
	Phone DeviceFamily = iota + 1
	Pad
	Universal
)

func (d DeviceFamily) String() string {
	switch d {
	case Phone:
		return "iphone"
	case Pad:
		return "ipad"
	case Universal:
		return "universal"
	}
	return fmt.Sprintf("DeviceFamily(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler
func (d DeviceFamily) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MissingFamilyPolicy decides what an absent or empty UIDeviceFamily means
type MissingFamilyPolicy int

const (
	// MissingAsPhone treats a missing key as an iPhone only app (default)
	MissingAsPhone MissingFamilyPolicy = iota
	// MissingAsUniversal treats a missing key as a universal app
	MissingAsUniversal
	// MissingIsError fails with MissingDeviceFamilyError
	MissingIsError
)

func (p MissingFamilyPolicy) String() string {
	switch p {
	case MissingAsPhone:
		return "phone"
	case MissingAsUniversal:
		return "universal"
	case MissingIsError:
		return "error"
	}
	return fmt.Sprintf("MissingFamilyPolicy(%d)", int(p))
}

// ParseFamilyPolicy parses "phone" (or "iphone"), "universal" or "error"
func ParseFamilyPolicy(s string) (MissingFamilyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "phone", "iphone":
		return MissingAsPhone, nil
	case "universal":
		return MissingAsUniversal, nil
	case "error", "strict":
		return MissingIsError, nil
	}
	return MissingAsPhone, fmt.Errorf("invalid device family policy %q (expected phone, universal or error)", s)
}

// MarshalText implements encoding.TextMarshaler
func (p MissingFamilyPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *MissingFamilyPolicy) UnmarshalText(text []byte) error {
	v, err := ParseFamilyPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ResolveDeviceFamily determines the device family declared by UIDeviceFamily.
//
// More than one entry is Universal. A single entry (integer or numeric string)
// of 1 is Phone and 2 is Pad. An absent key or an empty array is resolved by policy.
func ResolveDeviceFamily(tree *plist.Tree, policy MissingFamilyPolicy) (DeviceFamily, error) {
	v, ok := tree.Get(DeviceFamilyKey)
	if !ok {
		return missingFamily(policy)
	}

	var families []plist.Value
	if arr, isArr := v.AsArray(); isArr {
		families = arr
	} else {
		families = []plist.Value{v}
	}

	switch len(families) {
	case 0:
		return missingFamily(policy)
	case 1:
	default:
		return Universal, nil
	}

	id, err := familyID(families[0])
	if err != nil {
		return 0, err
	}
	switch id {
	case 1:
		return Phone, nil
	case 2:
		return Pad, nil
	}
	return 0, &UnknownDeviceFamilyError{Value: families[0]}
}

func familyID(v plist.Value) (int64, error) {
	switch v.Kind() {
	case plist.Integer:
		if i, ok := v.AsInt(); ok {
			return i, nil
		}
	case plist.String:
		s, _ := v.AsString()
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, &UnknownDeviceFamilyError{Value: v}
		}
		return i, nil
	}
	return 0, &UnknownDeviceFamilyError{Value: v}
}

func missingFamily(policy MissingFamilyPolicy) (DeviceFamily, error) {
	switch policy {
	case MissingAsUniversal:
		return Universal, nil
	case MissingIsError:
		return 0, &MissingDeviceFamilyError{}
	}
	return Phone, nil
}
