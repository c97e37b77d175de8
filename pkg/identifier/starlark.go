package identifier

import (
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// starlarkFilename names the expression in Starlark error messages.
const starlarkFilename = "reconcile"

// Starlark compiles a Starlark expression into a Reconciler. The expression
// sees the colliding identifier as the global `name` and must evaluate to a
// non-empty string, e.g. `"$" + name` or `name.upper()`.
//
// The expression is parsed and probed once here. If a later evaluation fails
// or yields something other than a non-empty string, the returned Reconciler
// logs the problem and falls back to Underscore, so Sanitize stays total.
func Starlark(expr string, logger *slog.Logger) (Reconciler, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := &syntax.FileOptions{}
	parsed, err := opts.ParseExpr(starlarkFilename, expr, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reconcile expression: %w", err)
	}

	pool := newThreadPool(0)
	eval := func(name string) (string, error) {
		thread := pool.get()
		globals := starlark.StringDict{"name": starlark.String(name)}
		v, err := starlark.EvalExprOptions(opts, thread, parsed, globals)
		if err != nil {
			// A failed thread may be cancelled; drop it.
			return "", err
		}
		pool.put(thread)
		s, ok := starlark.AsString(v)
		if !ok {
			return "", fmt.Errorf("reconcile expression returned %s, want string", v.Type())
		}
		if s == "" {
			return "", fmt.Errorf("reconcile expression returned an empty string")
		}
		return s, nil
	}

	if _, err := eval("class"); err != nil {
		return nil, fmt.Errorf("invalid reconcile expression %q: %w", expr, err)
	}

	return func(name string) string {
		out, err := eval(name)
		if err != nil {
			logger.Warn("reconcile expression failed, using default", "name", name, "error", err)
			return Underscore(name)
		}
		return out
	}, nil
}
