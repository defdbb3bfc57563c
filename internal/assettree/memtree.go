package assettree

import (
	"errors"
	"strings"
)

var (
	ErrNodeExists  = errors.New("assettree: node already exists")
	ErrInvalidName = errors.New("assettree: invalid node name")
)

// MemNode is an in-memory tree node. Children are keyed by name.
type MemNode struct {
	name     string
	parent   *MemNode
	value    Value
	alias    string
	isAlias  bool
	children map[string]*MemNode
	order    []string
}

// NewRoot creates a parentless node.
func NewRoot(name string) *MemNode {
	return &MemNode{name: name}
}

// Add creates a child node holding v.
func (n *MemNode) Add(name string, v Value) (*MemNode, error) {
	if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
		return nil, ErrInvalidName
	}
	if _, ok := n.children[name]; ok {
		return nil, ErrNodeExists
	}
	if n.children == nil {
		n.children = make(map[string]*MemNode)
	}
	child := &MemNode{name: name, parent: n, value: v}
	n.children[name] = child
	n.order = append(n.order, name)
	return child, nil
}

// MustAdd is Add for tree fixtures; it panics on error.
func (n *MemNode) MustAdd(name string, v Value) *MemNode {
	child, err := n.Add(name, v)
	if err != nil {
		panic(err)
	}
	return child
}

// AddAlias creates a child that stands for target, a slash-separated path
// relative to the new node's parent. ".." steps up one level.
func (n *MemNode) AddAlias(name, target string) (*Alias, error) {
	child, err := n.Add(name, Other{Data: target})
	if err != nil {
		return nil, err
	}
	child.alias = target
	child.isAlias = true
	return &Alias{MemNode: child}, nil
}

// MustAddAlias is AddAlias for tree fixtures; it panics on error.
func (n *MemNode) MustAddAlias(name, target string) *Alias {
	a, err := n.AddAlias(name, target)
	if err != nil {
		panic(err)
	}
	return a
}

func (n *MemNode) Name() string { return n.name }

func (n *MemNode) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Child returns the direct child named name, or nil. Alias children are
// returned as *Alias so callers see the Aliaser capability.
func (n *MemNode) Child(name string) Node {
	c, ok := n.children[name]
	if !ok {
		return nil
	}
	return c.node()
}

// Children returns child names in insertion order.
func (n *MemNode) Children() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

func (n *MemNode) Sibling(name string) Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(name)
}

func (n *MemNode) Value() Value {
	return n.value
}

func (n *MemNode) node() Node {
	if n.isAlias {
		return &Alias{MemNode: n}
	}
	return n
}

// Alias is a MemNode that stands for another node of the same tree.
type Alias struct {
	*MemNode
}

// Target returns the alias path.
func (a *Alias) Target() string {
	return a.alias
}

// ResolveAlias walks the alias path starting at the alias' parent.
// One step is taken per call; a target that is itself an alias is returned
// as *Alias.
func (a *Alias) ResolveAlias() Node {
	cur := a.parent
	for _, part := range strings.Split(a.alias, "/") {
		if cur == nil {
			return nil
		}
		switch part {
		case "", ".":
			continue
		case "..":
			cur = cur.parent
		default:
			next, ok := cur.children[part]
			if !ok {
				return nil
			}
			cur = next
		}
	}
	if cur == nil {
		return nil
	}
	return cur.node()
}
