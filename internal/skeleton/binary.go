package skeleton

import (
	"io"
	"strings"

	"github.com/blang/semver/v4"
)

// Layout is a binary skeleton header encoding.
type Layout int

const (
	LayoutUnknown Layout = iota
	// LayoutFixedHeader: 8 opaque bytes, then the version string.
	LayoutFixedHeader
	// LayoutPrefixedHeader: length-prefixed opaque header, then the version string.
	LayoutPrefixedHeader
)

const fixedHeaderLen = 8

func (l Layout) String() string {
	switch l {
	case LayoutFixedHeader:
		return "fixed_header"
	case LayoutPrefixedHeader:
		return "prefixed_header"
	default:
		return "unknown"
	}
}

// BinaryProbe is a version string sniffed from a binary skeleton header.
type BinaryProbe struct {
	Version string
	Layout  Layout
}

// probeOrder is the fixed try order; the newer layout goes first.
var probeOrder = [...]Layout{LayoutFixedHeader, LayoutPrefixedHeader}

// BinaryVersion returns the version string embedded in the blob at
// [offset, offset+length) of rs.
func BinaryVersion(rs io.ReadSeeker, offset, length int64) (string, bool) {
	p, ok := SniffBinary(rs, offset, length)
	if !ok {
		return "", false
	}
	return p.Version, true
}

// SniffBinary tries each known layout in order and returns the first one
// whose version string passes plausibleVersion. The read position of rs is
// restored before returning on every path.
func SniffBinary(rs io.ReadSeeker, offset, length int64) (probe BinaryProbe, ok bool) {
	if rs == nil || offset < 0 || length <= 0 {
		return BinaryProbe{}, false
	}
	// a panicking stream is reported as not found
	defer func() {
		if r := recover(); r != nil {
			probe, ok = BinaryProbe{}, false
		}
	}()
	origin, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return BinaryProbe{}, false
	}
	defer func() { _, _ = rs.Seek(origin, io.SeekStart) }()

	for _, layout := range probeOrder {
		v, err := readLayout(rs, offset, length, layout)
		if err != nil {
			continue
		}
		return BinaryProbe{Version: v, Layout: layout}, true
	}
	return BinaryProbe{}, false
}

func readLayout(rs io.ReadSeeker, offset, length int64, layout Layout) (string, error) {
	c, err := newCursor(rs, offset, length)
	if err != nil {
		return "", err
	}
	switch layout {
	case LayoutFixedHeader:
		if err := c.skip(fixedHeaderLen); err != nil {
			return "", err
		}
	case LayoutPrefixedHeader:
		h, err := c.readByte()
		if err != nil {
			return "", err
		}
		if h > 0 {
			if err := c.skip(int(h) - 1); err != nil {
				return "", err
			}
		}
	default:
		return "", errInvalidLength
	}
	v, present, err := c.readString()
	if err != nil {
		return "", err
	}
	if !present {
		return "", errInvalidLength
	}
	if err := plausibleVersion(v); err != nil {
		return "", err
	}
	return v, nil
}

// plausibleVersion accepts non-empty printable ASCII without spaces shaped
// like MAJOR.MINOR or MAJOR.MINOR.PATCH, all components plain decimal. A
// pre-release or build suffix is allowed on a full triple only.
func plausibleVersion(s string) error {
	if s == "" {
		return errInvalidLength
	}
	for i := 0; i < len(s); i++ {
		if s[i] <= ' ' || s[i] > '~' {
			return errNotPrintable
		}
	}
	core, suffixed := s, false
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		core, suffixed = s[:i], true
	}
	parts := strings.Split(core, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return errNotDotted
	}
	if suffixed && len(parts) != 3 {
		return errNotDotted
	}
	for _, part := range parts {
		if !decimal(part) {
			return errNotDotted
		}
	}
	full := s
	if len(parts) == 2 {
		full = s + ".0"
	}
	if _, err := semver.Parse(full); err != nil {
		return err
	}
	return nil
}

func decimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
