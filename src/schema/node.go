// Package schema declares configuration trees and normalizes raw documents
// against them.
//
// A schema is a tree of nodes built with Scalar, Group, Prototype and List.
// Normalization checks every recognized key for the expected shape, fills
// declared defaults leaf by leaf, and returns an ordered *Map.
package schema

// Kind is the shape of a raw configuration value.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

type nodeType int

const (
	scalarNode nodeType = iota
	groupNode
	prototypeNode
	listNode
)

// Node is one key of a schema tree.
type Node struct {
	name        string
	typ         nodeType
	info        string
	def         any
	hasDefault  bool
	children    []*Node
	materialize bool
	passthrough bool
}

// Scalar declares a key holding a string, number, or boolean.
func Scalar(name string) *Node {
	return &Node{name: name, typ: scalarNode}
}

// Group declares a mapping with a fixed set of children.
// An absent group is left out unless DefaultsIfNotSet is set; a null group
// is present and empty.
func Group(name string, children ...*Node) *Node {
	return &Node{name: name, typ: groupNode, children: children}
}

// Prototype declares an open mapping whose values are scalars.
// Caller keys are kept verbatim and in input order.
func Prototype(name string) *Node {
	return &Node{name: name, typ: prototypeNode}
}

// List declares an ordered sequence of scalars.
func List(name string) *Node {
	return &Node{name: name, typ: listNode}
}

// Default sets the value used when the key is absent or null.
func (n *Node) Default(v any) *Node {
	n.def = v
	n.hasDefault = true
	return n
}

// Info attaches help text shown in the reference output.
func (n *Node) Info(text string) *Node {
	n.info = text
	return n
}

// DefaultsIfNotSet makes a group always present so its children's defaults apply.
func (n *Node) DefaultsIfNotSet() *Node {
	n.materialize = true
	return n
}

// AllowUnknown keeps unrecognized keys of a group verbatim instead of rejecting them.
func (n *Node) AllowUnknown() *Node {
	n.passthrough = true
	return n
}

// Name returns the key this node matches.
func (n *Node) Name() string {
	return n.name
}

// Child returns the declared child with the given name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Schema is a complete configuration tree rooted at an unnamed group.
type Schema struct {
	root *Node
}

// New builds a schema whose root group holds children.
// Unrecognized top-level keys are passed through.
func New(children ...*Node) *Schema {
	return &Schema{root: Group("", children...).AllowUnknown()}
}

// Root returns the root group.
func (s *Schema) Root() *Node {
	return s.root
}
