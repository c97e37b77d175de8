// Package compile translates tript ASTs into ECMAScript ASTs.
//
// Compile is a pure recursive tree transform: it keeps no state between
// calls, never mutates its input, and may be called from many goroutines at
// once with the same Config. An unknown node kind anywhere in the tree fails
// the whole call; no partial tree is returned.
package compile

import (
	"github.com/leapstack-labs/triptjs/pkg/identifier"
	"github.com/leapstack-labs/triptjs/pkg/jsast"
	"github.com/leapstack-labs/triptjs/pkg/tript"
)

// Config is the read-only configuration threaded through a compilation.
type Config struct {
	// Identifiers controls how emitted names are kept clear of reserved words.
	Identifiers identifier.Options

	// Builder constructs the output nodes. Nil means jsast.Factory.
	Builder jsast.Builder
}

// DefaultConfig returns a Config with every default resolved.
func DefaultConfig() Config {
	return Config{
		Identifiers: identifier.DefaultOptions(),
		Builder:     jsast.Factory{},
	}
}

// Compile translates node into an ECMAScript expression.
func Compile(node tript.Node, cfg Config) (jsast.Expression, error) {
	if cfg.Builder == nil {
		cfg.Builder = jsast.Factory{}
	}
	c := compiler{b: cfg.Builder, ids: cfg.Identifiers}
	return c.compile(node)
}

// Operator returns the binary operator an n-ary node kind folds into.
func Operator(kind tript.Kind) (jsast.BinaryOperator, error) {
	switch kind {
	case tript.KindAnd:
		return jsast.OpLogicalAnd, nil
	case tript.KindOr:
		return jsast.OpLogicalOr, nil
	case tript.KindSum:
		return jsast.OpAdd, nil
	default:
		return "", unknownOperator(kind)
	}
}

type compiler struct {
	b   jsast.Builder
	ids identifier.Options
}

func (c compiler) compile(node tript.Node) (jsast.Expression, error) {
	if tript.IsNil(node) {
		return nil, unknownNodeKind("")
	}
	switch n := node.(type) {
	case *tript.LiteralBoolean:
		return c.b.LiteralBoolean(n.Value), nil
	case *tript.LiteralNumber:
		return c.b.LiteralNumeric(n.Value), nil
	case *tript.Reference:
		return c.b.Identifier(c.name(n.Name)), nil
	case *tript.And, *tript.Or, *tript.Sum:
		return c.compileOperation(n.(tript.Operation))
	case *tript.Equal:
		return c.compileEqual(n)
	case *tript.Function:
		return c.compileFunction(n)
	default:
		return nil, unknownNodeKind(node.Kind())
	}
}

func (c compiler) name(s string) string {
	return identifier.Sanitize(s, c.ids)
}

// identity is the value of an n-ary operation with no operands.
func (c compiler) identity(kind tript.Kind) (jsast.Expression, error) {
	switch kind {
	case tript.KindAnd:
		return c.b.LiteralBoolean(true), nil
	case tript.KindOr:
		return c.b.LiteralBoolean(false), nil
	case tript.KindSum:
		return c.b.LiteralNumeric(0), nil
	default:
		return nil, unknownOperator(kind)
	}
}

func (c compiler) compileOperation(n tript.Operation) (jsast.Expression, error) {
	children := n.Operands()
	switch len(children) {
	case 0:
		return c.identity(n.Kind())
	case 1:
		return c.compile(children[0])
	}

	op, err := Operator(n.Kind())
	if err != nil {
		return nil, err
	}
	return c.fold(op, children[0], children[1:])
}

// fold chains operands right-associatively: a OP (b OP (c OP d)).
func (c compiler) fold(op jsast.BinaryOperator, next tript.Node, rest []tript.Node) (jsast.Expression, error) {
	left, err := c.compile(next)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return left, nil
	}

	right, err := c.fold(op, rest[0], rest[1:])
	if err != nil {
		return nil, err
	}
	return c.b.Binary(op, left, right), nil
}

func (c compiler) compileEqual(n *tript.Equal) (jsast.Expression, error) {
	switch len(n.Children) {
	case 0, 1:
		return c.b.LiteralBoolean(true), nil
	case 2:
		left, err := c.compile(n.Children[0])
		if err != nil {
			return nil, err
		}
		right, err := c.compile(n.Children[1])
		if err != nil {
			return nil, err
		}
		return c.b.Binary(jsast.OpEqual, left, right), nil
	}

	// Three or more operands: every other operand is compared against the
	// first, and the comparisons are joined with And.
	first := n.Children[0]
	pairs := make([]tript.Node, 0, len(n.Children)-1)
	for _, other := range n.Children[1:] {
		pairs = append(pairs, tript.NewEqual(first, other))
	}
	return c.compile(tript.NewAnd(pairs...))
}

func (c compiler) compileFunction(n *tript.Function) (jsast.Expression, error) {
	params := make([]*jsast.BindingIdentifier, 0, len(n.Parameters))
	for _, p := range n.Parameters {
		params = append(params, c.b.Binding(c.name(p.Name)))
	}

	body, err := c.compile(n.Body)
	if err != nil {
		return nil, err
	}

	return c.b.Function(c.b.Binding(c.name(n.Name)), params, c.b.Return(body)), nil
}
