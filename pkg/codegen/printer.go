// Package codegen renders jsast trees as JavaScript source.
package codegen

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/triptjs/pkg/jsast"
)

const indentSize = 2

// Generate renders node as formatted JavaScript: two-space indentation, one
// statement per line, and parentheses only where operator precedence or
// the shape of the tree requires them.
func Generate(node jsast.Node) string {
	p := newPrinter()
	p.node(node)
	return p.String()
}

// Printer accumulates formatted output.
type Printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

func newPrinter() *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output without a trailing newline.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n")
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// formatList prints count items separated by sep.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
	}
}

func (p *Printer) node(n jsast.Node) {
	switch n := n.(type) {
	case jsast.Expression:
		p.expr(n)
	case jsast.Statement:
		p.stmt(n)
	case *jsast.BindingIdentifier:
		p.write(n.Name)
	case *jsast.FormalParameters:
		p.params(n)
	case *jsast.FunctionBody:
		p.body(n)
	}
}

func (p *Printer) expr(e jsast.Expression) {
	switch e := e.(type) {
	case *jsast.LiteralBooleanExpression:
		p.write(strconv.FormatBool(e.Value))
	case *jsast.LiteralNumericExpression:
		p.write(formatNumber(e.Value))
	case *jsast.IdentifierExpression:
		p.write(e.Name)
	case *jsast.BinaryExpression:
		p.binary(e)
	case *jsast.FunctionExpression:
		p.function(e)
	}
}

func (p *Printer) binary(e *jsast.BinaryExpression) {
	prec := e.Operator.Precedence()

	// Binary operators here are left-associative, so a right operand of equal
	// precedence keeps its parentheses.
	p.operand(e.Left, prec, false)
	p.write(" " + string(e.Operator) + " ")
	p.operand(e.Right, prec, true)
}

func (p *Printer) operand(e jsast.Expression, parent int, right bool) {
	if needsParens(e, parent, right) {
		p.write("(")
		p.expr(e)
		p.write(")")
		return
	}
	p.expr(e)
}

func needsParens(e jsast.Expression, parent int, right bool) bool {
	switch e := e.(type) {
	case *jsast.BinaryExpression:
		prec := e.Operator.Precedence()
		if right {
			return prec <= parent
		}
		return prec < parent
	case *jsast.FunctionExpression:
		// A leading function keyword would start a declaration.
		return true
	case *jsast.LiteralNumericExpression:
		// A negative literal would otherwise merge with a preceding operator.
		return right && math.Signbit(e.Value) && !math.IsNaN(e.Value)
	}
	return false
}

func (p *Printer) function(e *jsast.FunctionExpression) {
	p.write("function")
	if e.IsGenerator {
		p.write("*")
	}
	if e.Name != nil {
		p.write(" " + e.Name.Name)
	}
	p.params(e.Params)
	p.write(" ")
	p.body(e.Body)
}

func (p *Printer) params(params *jsast.FormalParameters) {
	p.write("(")
	if params != nil {
		p.formatList(len(params.Items), func(i int) {
			p.write(params.Items[i].Name)
		}, ", ")
		if params.Rest != nil {
			if len(params.Items) > 0 {
				p.write(", ")
			}
			p.write("..." + params.Rest.Name)
		}
	}
	p.write(")")
}

func (p *Printer) body(b *jsast.FunctionBody) {
	p.write("{")
	if b == nil || (len(b.Directives) == 0 && len(b.Statements) == 0) {
		p.write("}")
		return
	}
	p.writeln()
	p.indent()
	for _, d := range b.Directives {
		p.write(strconv.Quote(d) + ";")
		p.writeln()
	}
	for _, s := range b.Statements {
		p.stmt(s)
		p.writeln()
	}
	p.dedent()
	p.write("}")
}

func (p *Printer) stmt(s jsast.Statement) {
	switch s := s.(type) {
	case *jsast.ReturnStatement:
		if s.Expression == nil {
			p.write("return;")
			return
		}
		p.write("return ")
		p.expr(s.Expression)
		p.write(";")
	}
}

// formatNumber renders v as the shortest JavaScript numeric literal that
// reads back as v.
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "(0 / 0)"
	case math.IsInf(v, 1):
		return "2e308"
	case math.IsInf(v, -1):
		return "-2e308"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	return strings.Replace(s, "e+", "e", 1)
}
