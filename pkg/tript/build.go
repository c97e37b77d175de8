package tript

// Constructors for building trees in code. Children slices are never nil.

// Bool returns a boolean literal.
func Bool(v bool) *LiteralBoolean { return &LiteralBoolean{Value: v} }

// Num returns a numeric literal.
func Num(v float64) *LiteralNumber { return &LiteralNumber{Value: v} }

// Ref returns a reference to name.
func Ref(name string) *Reference { return &Reference{Name: name} }

// NewAnd returns a conjunction of children.
func NewAnd(children ...Node) *And { return &And{Children: nonNil(children)} }

// NewOr returns a disjunction of children.
func NewOr(children ...Node) *Or { return &Or{Children: nonNil(children)} }

// NewSum returns the sum of children.
func NewSum(children ...Node) *Sum { return &Sum{Children: nonNil(children)} }

// NewEqual returns an equality over children.
func NewEqual(children ...Node) *Equal { return &Equal{Children: nonNil(children)} }

// NewFunction returns a function with the given body.
func NewFunction(name string, body Node, params ...Parameter) *Function {
	if params == nil {
		params = []Parameter{}
	}
	return &Function{Name: name, Parameters: params, Body: body}
}

// Param returns a parameter declaration.
func Param(name, typ string) Parameter { return Parameter{Name: name, Type: typ} }

func nonNil(children []Node) []Node {
	if children == nil {
		return []Node{}
	}
	return children
}
