package skeleton

import (
	"errors"
	"fmt"
)

var (
	ErrMissingNode        = errors.New("skeleton: node or parent missing")
	ErrMissingSuffix      = errors.New("skeleton: missing atlas suffix")
	ErrMissingCompanion   = errors.New("skeleton: no companion found")
	ErrAliasResolution    = errors.New("skeleton: alias resolution failed")
	ErrWrongValueKind     = errors.New("skeleton: wrong value kind")
	ErrVersionNotFound    = errors.New("skeleton: version not found")
	ErrVersionUnparseable = errors.New("skeleton: version unparseable")
	ErrVersionUnsupported = errors.New("skeleton: version unsupported")
)

// probe-internal; never returned from exported functions.
var (
	errTruncated     = errors.New("skeleton: truncated data")
	errInvalidLength = errors.New("skeleton: invalid length")
	errNotPrintable  = errors.New("skeleton: non-printable version")
	errNotDotted     = errors.New("skeleton: version not dotted numeric")
)

// DetectError is one diagnosed detection failure.
type DetectError struct {
	Kind   error
	Detail string
}

func (e *DetectError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
}

func (e *DetectError) Unwrap() error {
	return e.Kind
}

func failf(kind error, format string, args ...any) *DetectError {
	return &DetectError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Reason returns a short metric-safe label for err.
func Reason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingNode):
		return "missing_node"
	case errors.Is(err, ErrMissingSuffix):
		return "missing_suffix"
	case errors.Is(err, ErrMissingCompanion):
		return "missing_companion"
	case errors.Is(err, ErrAliasResolution):
		return "alias_resolution"
	case errors.Is(err, ErrWrongValueKind):
		return "wrong_value_kind"
	case errors.Is(err, ErrVersionNotFound):
		return "version_not_found"
	case errors.Is(err, ErrVersionUnparseable):
		return "version_unparseable"
	case errors.Is(err, ErrVersionUnsupported):
		return "version_unsupported"
	default:
		return "unknown"
	}
}
