package jsast

// Builder constructs target nodes. The compiler depends only on this
// interface; Factory is the default implementation.
type Builder interface {
	LiteralBoolean(value bool) Expression
	LiteralNumeric(value float64) Expression
	Identifier(name string) Expression
	Binary(op BinaryOperator, left, right Expression) Expression
	Binding(name string) *BindingIdentifier
	Return(expr Expression) Statement
	Function(name *BindingIdentifier, params []*BindingIdentifier, body ...Statement) Expression
}

// Factory builds the node types declared in this package.
type Factory struct{}

var _ Builder = Factory{}

// LiteralBoolean implements Builder.
func (Factory) LiteralBoolean(value bool) Expression {
	return &LiteralBooleanExpression{Value: value}
}

// LiteralNumeric implements Builder.
func (Factory) LiteralNumeric(value float64) Expression {
	return &LiteralNumericExpression{Value: value}
}

// Identifier implements Builder.
func (Factory) Identifier(name string) Expression {
	return &IdentifierExpression{Name: name}
}

// Binary implements Builder.
func (Factory) Binary(op BinaryOperator, left, right Expression) Expression {
	return &BinaryExpression{Left: left, Operator: op, Right: right}
}

// Binding implements Builder.
func (Factory) Binding(name string) *BindingIdentifier {
	return &BindingIdentifier{Name: name}
}

// Return implements Builder.
func (Factory) Return(expr Expression) Statement {
	return &ReturnStatement{Expression: expr}
}

// Function implements Builder.
func (Factory) Function(name *BindingIdentifier, params []*BindingIdentifier, body ...Statement) Expression {
	if params == nil {
		params = []*BindingIdentifier{}
	}
	if body == nil {
		body = []Statement{}
	}
	return &FunctionExpression{
		Name:   name,
		Params: &FormalParameters{Items: params},
		Body: &FunctionBody{
			Directives: []string{},
			Statements: body,
		},
	}
}
