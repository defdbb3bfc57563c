// Package dispatch owns the hand-off from detection to animation runtimes.
//
// Ownership boundary:
// - runtime contract per schema version
// - runtime registry keyed by schema version
// - atlas/skeleton construction from a successful detection result
//
// Classification lives in package skeleton; nothing here inspects versions.
package dispatch
