// Package skeleton owns detection of skeleton resource pairs.
//
// Ownership boundary:
// - atlas/companion pairing by naming convention
// - load type classification (textual, binary)
// - version extraction from text documents and binary headers
// - schema version mapping
//
// Detection never panics or returns a Go error to the caller; every failure
// is reported inside a Result.
package skeleton
