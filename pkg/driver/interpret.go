package driver

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/triptjs/pkg/tript"
)

// Result is what an Interpreter makes of a script. It is one of
// Diagnostics, Residual or Opaque.
type Result interface {
	result()
}

// Diagnostic is a single problem reported by an Interpreter.
type Diagnostic struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Message
	}
	return d.Path + ": " + d.Message
}

// Diagnostics are returned to the caller unchanged; nothing is compiled.
type Diagnostics []Diagnostic

// Residual replaces the script with Node, which is compiled instead.
type Residual struct {
	Node tript.Node
}

// Opaque means the interpreter could not reduce the script, usually because
// it evaluates to a function. The original script is compiled.
type Opaque struct{}

func (Diagnostics) result() {}
func (Residual) result()    {}
func (Opaque) result()      {}

// Interpreter evaluates a script before it is compiled.
type Interpreter interface {
	Interpret(ctx context.Context, node tript.Node) (Result, error)
}

// InterpreterFunc adapts a function to the Interpreter interface.
type InterpreterFunc func(ctx context.Context, node tript.Node) (Result, error)

// Interpret implements Interpreter.
func (f InterpreterFunc) Interpret(ctx context.Context, node tript.Node) (Result, error) {
	return f(ctx, node)
}

// Passthrough compiles every script as written.
var Passthrough Interpreter = InterpreterFunc(func(context.Context, tript.Node) (Result, error) {
	return Opaque{}, nil
})

// Evaluator folds closed scripts to a single literal. Scripts that are
// functions are left Opaque; free references and operand type mismatches
// are reported as Diagnostics.
type Evaluator struct{}

// Interpret implements Interpreter.
func (Evaluator) Interpret(ctx context.Context, node tript.Node) (Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := node.(*tript.Function); ok {
		return Opaque{}, nil
	}

	e := &evaluation{}
	v := e.eval(node, "$")
	if len(e.diags) > 0 {
		return e.diags, nil
	}
	switch v := v.(type) {
	case bool:
		return Residual{Node: tript.Bool(v)}, nil
	case float64:
		return Residual{Node: tript.Num(v)}, nil
	}
	return Opaque{}, nil
}

type evaluation struct {
	diags Diagnostics
}

func (e *evaluation) report(path, format string, args ...any) {
	e.diags = append(e.diags, Diagnostic{Path: path, Message: fmt.Sprintf(format, args...)})
}

// eval returns a bool, a float64, or nil after reporting a diagnostic.
func (e *evaluation) eval(node tript.Node, path string) any {
	if tript.IsNil(node) {
		e.report(path, "missing node")
		return nil
	}
	switch n := node.(type) {
	case *tript.LiteralBoolean:
		return n.Value
	case *tript.LiteralNumber:
		return n.Value
	case *tript.Reference:
		e.report(path, "unbound reference %q", n.Name)
	case *tript.And:
		return e.logical(n.Children, path, true)
	case *tript.Or:
		return e.logical(n.Children, path, false)
	case *tript.Sum:
		total := 0.0
		for i, v := range e.operands(n.Children, path) {
			f, ok := v.(float64)
			if !ok {
				e.mismatch(path, i, "Number", v)
				return nil
			}
			total += f
		}
		return total
	case *tript.Equal:
		values := e.operands(n.Children, path)
		if values == nil {
			return nil
		}
		for i := 1; i < len(values); i++ {
			if want := typeName(values[0]); typeName(values[i]) != want {
				e.mismatch(path, i, want, values[i])
				return nil
			}
		}
		for i := 1; i < len(values); i++ {
			if values[i] != values[0] {
				return false
			}
		}
		return true
	case *tript.Function:
		e.report(path, "function %q cannot be used as a value", n.Name)
	default:
		e.report(path, "unknown node type %q", string(node.Kind()))
	}
	return nil
}

// logical evaluates And (identity true) or Or (identity false) with
// short-circuiting.
func (e *evaluation) logical(children []tript.Node, path string, identity bool) any {
	for i, child := range children {
		v := e.eval(child, childPath(path, i))
		if v == nil {
			return nil
		}
		b, ok := v.(bool)
		if !ok {
			e.mismatch(path, i, "Boolean", v)
			return nil
		}
		if b != identity {
			return b
		}
	}
	return identity
}

// operands evaluates every child, returning nil if any failed.
func (e *evaluation) operands(children []tript.Node, path string) []any {
	values := make([]any, 0, len(children))
	for i, child := range children {
		v := e.eval(child, childPath(path, i))
		if v == nil {
			return nil
		}
		values = append(values, v)
	}
	return values
}

func (e *evaluation) mismatch(path string, i int, want string, got any) {
	e.report(childPath(path, i), "expected %s, got %s", want, typeName(got))
}

func typeName(v any) string {
	switch v.(type) {
	case bool:
		return "Boolean"
	case float64:
		return "Number"
	}
	return fmt.Sprintf("%T", v)
}

func childPath(path string, i int) string {
	return fmt.Sprintf("%s.children[%d]", path, i)
}
