// Package jsast defines the subset of the Shift ECMAScript AST produced by
// the compiler, and the Builder through which the compiler constructs it.
//
// Node and field names follow the Shift AST format so the JSON form
// can be consumed by Shift-compatible tooling.
package jsast

// Node is an ECMAScript AST node.
type Node interface {
	Type() string
}

// Expression is a node in expression position.
type Expression interface {
	Node
	exprNode()
}

// Statement is a node in statement position.
type Statement interface {
	Node
	stmtNode()
}

// BinaryOperator is the operator of a BinaryExpression.
type BinaryOperator string

// Operators emitted by the compiler.
const (
	OpLogicalAnd BinaryOperator = "&&"
	OpLogicalOr  BinaryOperator = "||"
	OpAdd        BinaryOperator = "+"
	OpEqual      BinaryOperator = "=="
)

// Precedence returns the binding power of op; higher binds tighter. Unknown
// operators return 0.
func (op BinaryOperator) Precedence() int {
	switch op {
	case OpLogicalOr:
		return 1
	case OpLogicalAnd:
		return 2
	case OpEqual:
		return 6
	case OpAdd:
		return 9
	default:
		return 0
	}
}

// ---------- Expressions ----------

// LiteralBooleanExpression is `true` or `false`.
type LiteralBooleanExpression struct {
	Value bool `json:"value"`
}

// LiteralNumericExpression is a number literal.
type LiteralNumericExpression struct {
	Value float64 `json:"value"`
}

// IdentifierExpression references a binding by name.
type IdentifierExpression struct {
	Name string `json:"name"`
}

// BinaryExpression applies Operator to Left and Right.
type BinaryExpression struct {
	Left     Expression     `json:"left"`
	Operator BinaryOperator `json:"operator"`
	Right    Expression     `json:"right"`
}

// FunctionExpression is a named function expression.
type FunctionExpression struct {
	IsAsync     bool               `json:"isAsync"`
	IsGenerator bool               `json:"isGenerator"`
	Name        *BindingIdentifier `json:"name"`
	Params      *FormalParameters  `json:"params"`
	Body        *FunctionBody      `json:"body"`
}

// ---------- Bindings, bodies and statements ----------

// BindingIdentifier introduces a name.
type BindingIdentifier struct {
	Name string `json:"name"`
}

// FormalParameters is a function parameter list.
type FormalParameters struct {
	Items []*BindingIdentifier `json:"items"`
	Rest  *BindingIdentifier   `json:"rest"`
}

// FunctionBody holds the directives and statements of a function.
type FunctionBody struct {
	Directives []string    `json:"directives"`
	Statements []Statement `json:"statements"`
}

// ReturnStatement returns Expression from the enclosing function.
type ReturnStatement struct {
	Expression Expression `json:"expression"`
}

// Type implements Node.
func (*LiteralBooleanExpression) Type() string { return "LiteralBooleanExpression" }

// Type implements Node.
func (*LiteralNumericExpression) Type() string { return "LiteralNumericExpression" }

// Type implements Node.
func (*IdentifierExpression) Type() string { return "IdentifierExpression" }

// Type implements Node.
func (*BinaryExpression) Type() string { return "BinaryExpression" }

// Type implements Node.
func (*FunctionExpression) Type() string { return "FunctionExpression" }

// Type implements Node.
func (*BindingIdentifier) Type() string { return "BindingIdentifier" }

// Type implements Node.
func (*FormalParameters) Type() string { return "FormalParameters" }

// Type implements Node.
func (*FunctionBody) Type() string { return "FunctionBody" }

// Type implements Node.
func (*ReturnStatement) Type() string { return "ReturnStatement" }

func (*LiteralBooleanExpression) exprNode() {}
func (*LiteralNumericExpression) exprNode() {}
func (*IdentifierExpression) exprNode()     {}
func (*BinaryExpression) exprNode()         {}
func (*FunctionExpression) exprNode()       {}

func (*ReturnStatement) stmtNode() {}
