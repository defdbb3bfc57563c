package assettree

import (
	"io"
	"strings"
)

// Node is one entry of a hierarchical asset tree.
type Node interface {
	Name() string
	// Parent returns nil at the root.
	Parent() Node
	// Sibling returns the entry named name under the same parent, or nil.
	Sibling(name string) Node
	Value() Value
}

// Aliaser is implemented by nodes that stand for another node in the tree.
// ResolveAlias returns nil when the target cannot be found.
type Aliaser interface {
	ResolveAlias() Node
}

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "other"
	}
}

// Value is the sealed set of node payloads: Text, Blob or Other.
type Value interface {
	Kind() Kind
	sealed()
}

// Text is a textual node payload.
type Text string

func (Text) Kind() Kind { return KindText }
func (Text) sealed()    {}

// Blob references a byte range inside a shared backing stream.
type Blob struct {
	Stream io.ReadSeeker
	Offset int64
	Length int64
}

func (Blob) Kind() Kind { return KindBlob }
func (Blob) sealed()    {}

// Other carries any payload detection does not interpret.
type Other struct {
	Data any
}

func (Other) Kind() Kind { return KindOther }
func (Other) sealed()    {}

// KindOf reports the kind of v, treating nil as KindOther.
func KindOf(v Value) Kind {
	if v == nil {
		return KindOther
	}
	return v.Kind()
}

// Resolve follows alias indirection from n for at most maxHops steps.
// Nodes that are not aliases resolve to themselves. A missing target, a chain
// longer than maxHops, or a nil n yields (nil, false).
func Resolve(n Node, maxHops int) (Node, bool) {
	if n == nil {
		return nil, false
	}
	cur := n
	for hops := 0; ; hops++ {
		a, ok := cur.(Aliaser)
		if !ok {
			return cur, true
		}
		if hops >= maxHops {
			return nil, false
		}
		next := a.ResolveAlias()
		if next == nil {
			return nil, false
		}
		cur = next
	}
}

// Path returns the slash-joined names from the root down to n.
func Path(n Node) string {
	if n == nil {
		return ""
	}
	parts := make([]string, 0, 8)
	for cur := n; cur != nil; cur = cur.Parent() {
		parts = append(parts, cur.Name())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}
