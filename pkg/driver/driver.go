// Package driver runs the full pipeline from a tript script to JavaScript
// source: interpretation, compilation, code generation and optional
// post-processing through esbuild.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/leapstack-labs/triptjs/pkg/codegen"
	"github.com/leapstack-labs/triptjs/pkg/compile"
	"github.com/leapstack-labs/triptjs/pkg/identifier"
	"github.com/leapstack-labs/triptjs/pkg/jsast"
	"github.com/leapstack-labs/triptjs/pkg/tript"
	"golang.org/x/sync/errgroup"
)

// Options configures a Driver.
type Options struct {
	Compile     compile.Config
	Interpreter Interpreter // nil means Passthrough

	// Minify runs the generated code through esbuild's minifier.
	Minify bool
	// Verify parses the generated code with esbuild for the configured
	// dialect and fails the compilation on syntax errors.
	Verify bool

	// Concurrency bounds CompileAll. Zero or less means GOMAXPROCS.
	Concurrency int

	Logger *slog.Logger
}

// Output is the product of compiling one script. When Diagnostics is
// non-empty the interpreter rejected the script and Code and AST are empty.
type Output struct {
	Code        string           `json:"code,omitempty"`
	AST         jsast.Expression `json:"ast,omitempty"`
	Diagnostics Diagnostics      `json:"diagnostics,omitempty"`
}

// Driver compiles scripts with a fixed set of Options. It is safe for
// concurrent use.
type Driver struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Driver. Unset identifier options take the defaults of
// identifier.DefaultOptions.
func New(opts Options) *Driver {
	if opts.Compile.Identifiers.IsZero() {
		opts.Compile.Identifiers = identifier.DefaultOptions()
	}
	if opts.Interpreter == nil {
		opts.Interpreter = Passthrough
	}
	if opts.Compile.Builder == nil {
		opts.Compile.Builder = jsast.Factory{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{opts: opts, logger: logger}
}

// CompileToString compiles node with cfg and renders it as formatted
// JavaScript.
func CompileToString(node tript.Node, cfg compile.Config) (string, error) {
	expr, err := compile.Compile(node, cfg)
	if err != nil {
		return "", err
	}
	return codegen.Generate(expr), nil
}

// Compile interprets node, then compiles whatever the interpreter leaves
// to compile.
func (d *Driver) Compile(ctx context.Context, node tript.Node) (*Output, error) {
	res, err := d.opts.Interpreter.Interpret(ctx, node)
	if err != nil {
		return nil, fmt.Errorf("failed to interpret script: %w", err)
	}

	switch r := res.(type) {
	case Diagnostics:
		d.logger.Debug("interpreter reported diagnostics", "count", len(r))
		return &Output{Diagnostics: r}, nil
	case Residual:
		d.logger.Debug("interpreter reduced script", "kind", r.Node.Kind())
		node = r.Node
	case Opaque:
	default:
		return nil, fmt.Errorf("unexpected interpreter result %T", res)
	}

	expr, err := compile.Compile(node, d.opts.Compile)
	if err != nil {
		return nil, err
	}

	code := codegen.Generate(expr)
	dialect := d.opts.Compile.Identifiers.Dialect
	if d.opts.Verify {
		if err := codegen.Verify(code, dialect); err != nil {
			return nil, err
		}
	}
	if d.opts.Minify {
		if code, err = codegen.Minify(code, dialect); err != nil {
			return nil, fmt.Errorf("failed to minify: %w", err)
		}
	}

	return &Output{Code: code, AST: expr}, nil
}

// Input is one named script for CompileAll.
type Input struct {
	Name string
	Node tript.Node
}

// BatchResult is the outcome of compiling one Input.
type BatchResult struct {
	Name   string
	Output *Output
	Err    error
}

// CompileAll compiles inputs concurrently. Results are returned in input
// order; a failing input does not stop the others. The returned error is
// non-nil only when ctx is cancelled, in which case inputs that had not
// started carry ctx's error.
func (d *Driver) CompileAll(ctx context.Context, inputs []Input) ([]BatchResult, error) {
	limit := d.opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	start := time.Now()
	for i, in := range inputs {
		results[i].Name = in.Name
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			out, err := d.Compile(gctx, in.Node)
			results[i].Output = out
			results[i].Err = err
			if err != nil {
				d.logger.Debug("compile failed", "name", in.Name, "error", err)
			}
			return nil
		})
	}

	_ = g.Wait()
	d.logger.Debug("batch compiled", "inputs", len(inputs), "duration", time.Since(start))
	return results, ctx.Err()
}
