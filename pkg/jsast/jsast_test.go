package jsast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory(t *testing.T) {
	var b Builder = Factory{}

	fn := b.Function(
		b.Binding("foobar"),
		[]*BindingIdentifier{b.Binding("baz")},
		b.Return(b.Binary(OpLogicalAnd, b.Identifier("baz"), b.LiteralBoolean(true))),
	)

	expr, ok := fn.(*FunctionExpression)
	require.True(t, ok)
	assert.Equal(t, "foobar", expr.Name.Name)
	require.Len(t, expr.Params.Items, 1)
	assert.Equal(t, "baz", expr.Params.Items[0].Name)
	require.Len(t, expr.Body.Statements, 1)
	assert.Empty(t, expr.Body.Directives)

	ret, ok := expr.Body.Statements[0].(*ReturnStatement)
	require.True(t, ok)
	bin, ok := ret.Expression.(*BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, OpLogicalAnd, bin.Operator)
}

func TestFactory_EmptyFunction(t *testing.T) {
	fn := Factory{}.Function(Factory{}.Binding("f"), nil).(*FunctionExpression)
	assert.NotNil(t, fn.Params.Items)
	assert.NotNil(t, fn.Body.Statements)
}

func TestPrecedence(t *testing.T) {
	assert.Less(t, OpLogicalOr.Precedence(), OpLogicalAnd.Precedence())
	assert.Less(t, OpLogicalAnd.Precedence(), OpEqual.Precedence())
	assert.Less(t, OpEqual.Precedence(), OpAdd.Precedence())
	assert.Equal(t, 0, BinaryOperator("**").Precedence())
}

func TestMarshalJSON(t *testing.T) {
	b := Factory{}
	fn := b.Function(
		b.Binding("f"),
		[]*BindingIdentifier{b.Binding("x")},
		b.Return(b.Binary(OpEqual, b.Identifier("x"), b.LiteralNumeric(1))),
	)

	data, err := json.Marshal(fn)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "FunctionExpression",
		"isAsync": false,
		"isGenerator": false,
		"name": {"type": "BindingIdentifier", "name": "f"},
		"params": {
			"type": "FormalParameters",
			"items": [{"type": "BindingIdentifier", "name": "x"}],
			"rest": null
		},
		"body": {
			"type": "FunctionBody",
			"directives": [],
			"statements": [{
				"type": "ReturnStatement",
				"expression": {
					"type": "BinaryExpression",
					"left": {"type": "IdentifierExpression", "name": "x"},
					"operator": "==",
					"right": {"type": "LiteralNumericExpression", "value": 1}
				}
			}]
		}
	}`, string(data))
}
