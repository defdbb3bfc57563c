// Package assettree owns the asset-tree capabilities consumed by detection.
//
// Ownership boundary:
// - node lookup contract (name, parent, sibling, value)
// - alias indirection capability
// - tagged node values (text, blob range, other)
// - in-memory tree for embedders without a host tree
package assettree
