// Package tript defines the typed tript expression AST consumed by the
// compiler.
//
// The node set is closed: every Node is one of the types declared in this
// package. Nodes carrying a kind tag outside that set are kept as
// *Unrecognized so that the compiler, not the decoder, decides how to fail.
package tript

// Kind is the discriminant of a node, matching the `_type` tag of the
// serialized form.
type Kind string

// Node kinds.
const (
	KindLiteralBoolean Kind = "LiteralBoolean"
	KindLiteralNumber  Kind = "LiteralNumber"
	KindReference      Kind = "Reference"
	KindAnd            Kind = "And"
	KindOr             Kind = "Or"
	KindSum            Kind = "Sum"
	KindEqual          Kind = "Equal"
	KindFunction       Kind = "Function"
	KindParameter      Kind = "Parameter"
)

// Node is a tript AST node.
type Node interface {
	Kind() Kind
	node()
}

// Operation is a node with an ordered list of operands.
type Operation interface {
	Node
	Operands() []Node
}

// LiteralBoolean is a boolean constant.
type LiteralBoolean struct {
	Value bool
}

// LiteralNumber is a numeric constant.
type LiteralNumber struct {
	Value float64
}

// Reference names a variable in scope.
type Reference struct {
	Name string
}

// And is the n-ary logical conjunction.
type And struct {
	Children []Node
}

// Or is the n-ary logical disjunction.
type Or struct {
	Children []Node
}

// Sum is the n-ary numeric addition.
type Sum struct {
	Children []Node
}

// Equal holds when all children are pairwise equal.
type Equal struct {
	Children []Node
}

// Function is a single-expression function.
type Function struct {
	Name       string
	Parameters []Parameter
	Body       Node
}

// Parameter is a typed function parameter. Type is carried for upstream
// validation and is not consulted by the compiler.
type Parameter struct {
	Name string
	Type string
}

// Unrecognized is a node whose kind tag is not part of the node set.
type Unrecognized struct {
	Tag Kind
	Raw string // serialized form, when decoded
}

func (*LiteralBoolean) node() {}
func (*LiteralNumber) node()  {}
func (*Reference) node()      {}
func (*And) node()            {}
func (*Or) node()             {}
func (*Sum) node()            {}
func (*Equal) node()          {}
func (*Function) node()       {}
func (*Unrecognized) node()   {}

// Kind implements Node.
func (*LiteralBoolean) Kind() Kind { return KindLiteralBoolean }

// Kind implements Node.
func (*LiteralNumber) Kind() Kind { return KindLiteralNumber }

// Kind implements Node.
func (*Reference) Kind() Kind { return KindReference }

// Kind implements Node.
func (*And) Kind() Kind { return KindAnd }

// Kind implements Node.
func (*Or) Kind() Kind { return KindOr }

// Kind implements Node.
func (*Sum) Kind() Kind { return KindSum }

// Kind implements Node.
func (*Equal) Kind() Kind { return KindEqual }

// Kind implements Node.
func (*Function) Kind() Kind { return KindFunction }

// Kind implements Node.
func (u *Unrecognized) Kind() Kind { return u.Tag }

// Operands implements Operation.
func (n *And) Operands() []Node { return n.Children }

// Operands implements Operation.
func (n *Or) Operands() []Node { return n.Children }

// Operands implements Operation.
func (n *Sum) Operands() []Node { return n.Children }

// Operands implements Operation.
func (n *Equal) Operands() []Node { return n.Children }

// IsNil reports whether node is nil, including a nil pointer of one of the
// node types.
func IsNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *LiteralBoolean:
		return n == nil
	case *LiteralNumber:
		return n == nil
	case *Reference:
		return n == nil
	case *And:
		return n == nil
	case *Or:
		return n == nil
	case *Sum:
		return n == nil
	case *Equal:
		return n == nil
	case *Function:
		return n == nil
	case *Unrecognized:
		return n == nil
	}
	return false
}
