package codegen

import (
	"math"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/leapstack-labs/triptjs/pkg/compile"
	"github.com/leapstack-labs/triptjs/pkg/jsast"
	"github.com/leapstack-labs/triptjs/pkg/reserved"
	"github.com/leapstack-labs/triptjs/pkg/tript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, node tript.Node) string {
	t.Helper()
	expr, err := compile.Compile(node, compile.DefaultConfig())
	require.NoError(t, err)
	return Generate(expr)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		node tript.Node
		want string
	}{
		{"boolean", tript.Bool(true), "true"},
		{"integer", tript.Num(42), "42"},
		{"fraction", tript.Num(0.25), "0.25"},
		{"reference", tript.Ref("class"), "_class"},
		{"empty and", tript.NewAnd(), "true"},
		{"empty sum", tript.NewSum(), "0"},
		{"binary", tript.NewOr(tript.Ref("a"), tript.Ref("b")), "a || b"},
		{
			name: "right associative chain keeps its grouping",
			node: tript.NewAnd(tript.Ref("a"), tript.Ref("b"), tript.Ref("c")),
			want: "a && (b && c)",
		},
		{
			name: "equality chain",
			node: tript.NewEqual(tript.Num(1), tript.Num(2), tript.Num(3)),
			want: "1 == 2 && 1 == 3",
		},
		{
			name: "lower precedence operand",
			node: tript.NewAnd(tript.NewOr(tript.Ref("a"), tript.Ref("b")), tript.Ref("c")),
			want: "(a || b) && c",
		},
		{
			name: "higher precedence operand",
			node: tript.NewEqual(tript.NewSum(tript.Ref("x"), tript.Num(1)), tript.Num(2)),
			want: "x + 1 == 2",
		},
		{
			name: "negative right operand",
			node: tript.NewSum(tript.Ref("x"), tript.Num(-1)),
			want: "x + (-1)",
		},
		{
			name: "function",
			node: tript.NewFunction("foobar", tript.NewAnd(tript.Ref("baz"), tript.Ref("let")),
				tript.Param("baz", "Boolean"), tript.Param("let", "Boolean")),
			want: "function foobar(baz, _let) {\n  return baz && _let;\n}",
		},
		{
			name: "function operand",
			node: tript.NewAnd(tript.NewFunction("f", tript.Bool(true)), tript.Ref("x")),
			want: "(function f() {\n  return true;\n}) && x",
		},
		{
			name: "function without parameters",
			node: tript.NewFunction("f", tript.Bool(false)),
			want: "function f() {\n  return false;\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, generate(t, tt.node))
		})
	}
}

func TestGenerate_NestedFunctionIndents(t *testing.T) {
	b := jsast.Factory{}
	inner := b.Function(b.Binding("inner"), nil, b.Return(b.LiteralNumeric(1)))
	outer := b.Function(b.Binding("outer"), nil, b.Return(inner))

	want := "function outer() {\n" +
		"  return function inner() {\n" +
		"    return 1;\n" +
		"  };\n" +
		"}"
	assert.Equal(t, want, Generate(outer))
}

func TestGenerate_Statement(t *testing.T) {
	b := jsast.Factory{}
	assert.Equal(t, "return x;", Generate(b.Return(b.Identifier("x"))))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{3, "3"},
		{-2.5, "-2.5"},
		{1e20, "100000000000000000000"},
		{1e21, "1e21"},
		{1.5e-7, "1.5e-07"},
		{0.000001, "0.000001"},
		{math.Inf(1), "2e308"},
		{math.Inf(-1), "-2e308"},
		{math.NaN(), "(0 / 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatNumber(tt.in))
		})
	}
}

func TestTarget(t *testing.T) {
	assert.Equal(t, api.ES5, Target(reserved.ES3))
	assert.Equal(t, api.ES5, Target(reserved.ES5))
	assert.Equal(t, api.ES2015, Target(reserved.ES6))
	assert.Equal(t, api.ES2015, Target(0))
}

func TestVerify(t *testing.T) {
	t.Run("generated code parses", func(t *testing.T) {
		code := generate(t, tript.NewFunction("new", tript.NewEqual(tript.Ref("class"), tript.Ref("await"), tript.Num(1)),
			tript.Param("class", "Number"), tript.Param("await", "Number")))
		assert.NoError(t, Verify(code, reserved.ES6))
	})

	t.Run("reserved identifier is rejected", func(t *testing.T) {
		err := Verify("class && true", reserved.ES5)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidOutput)
		assert.Contains(t, err.Error(), "esbuild errors")
	})
}

func TestMinify(t *testing.T) {
	code := generate(t, tript.NewAnd(tript.Ref("foo"), tript.NewOr(tript.Ref("bar"), tript.Ref("baz"))))
	require.Equal(t, "foo && (bar || baz)", code)

	got, err := Minify(code, reserved.ES6)
	require.NoError(t, err)
	assert.Equal(t, "foo&&(bar||baz)", got)
}

func TestMinify_Function(t *testing.T) {
	code := generate(t, tript.NewFunction("check", tript.NewSum(tript.Ref("count"), tript.Num(1)), tript.Param("count", "Number")))

	got, err := Minify(code, reserved.ES5)
	require.NoError(t, err)
	assert.Less(t, len(got), len(code))
	assert.NotContains(t, got, "\n")
	assert.NotContains(t, got, "count")
	assert.True(t, strings.HasPrefix(got, "function check("), "name kept in %q", got)
	assert.NoError(t, Verify(got, reserved.ES5))
}

func TestMinify_KeepsSanitizedFunctionName(t *testing.T) {
	code := generate(t, tript.NewFunction("new", tript.NewEqual(tript.Ref("class"), tript.Ref("x")),
		tript.Param("class", "Number"), tript.Param("x", "Number")))
	require.Equal(t, "function _new(_class, x) {\n  return _class == x;\n}", code)

	got, err := Minify(code, reserved.ES6)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "function _new("), "name kept in %q", got)
	assert.NoError(t, Verify(got, reserved.ES6))
}

func TestVerify_FunctionOperand(t *testing.T) {
	code := generate(t, tript.NewAnd(tript.NewFunction("f", tript.Bool(true)), tript.Ref("x")))
	assert.NoError(t, Verify(code, reserved.ES6))
}
