package skeleton

import (
	"github.com/blang/semver/v4"
)

// ParseVersion parses raw as a dotted numeric version. Short forms such as
// "4.1" are padded; a leading "v" and surrounding spaces are tolerated.
func ParseVersion(raw string) (semver.Version, error) {
	return semver.ParseTolerant(raw)
}

// MapVersion maps a parsed version onto a supported schema version.
func MapVersion(v semver.Version) (SchemaVersion, bool) {
	switch v.Major {
	case 2:
		return V2, true
	case 4:
		return V4, true
	default:
		return 0, false
	}
}

// Classify parses raw and maps it onto a schema version.
func Classify(raw string) (SchemaVersion, error) {
	v, err := ParseVersion(raw)
	if err != nil {
		return 0, failf(ErrVersionUnparseable, "%q", raw)
	}
	sv, ok := MapVersion(v)
	if !ok {
		return 0, failf(ErrVersionUnsupported, "%q", raw)
	}
	return sv, nil
}
