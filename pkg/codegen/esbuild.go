package codegen

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/leapstack-labs/triptjs/pkg/reserved"
)

// ErrInvalidOutput is returned when esbuild rejects generated code.
var ErrInvalidOutput = errors.New("generated code does not parse")

// holder names the binding generated code is assigned to while esbuild
// processes it, so that a bare expression statement is not dropped as
// side-effect free.
const holder = "__triptjs_expr"

// isDeclaration reports whether code is a named function at the top level.
// esbuild sees it as a function declaration, whose name minification keeps.
// Named function expressions lose an unused name.
func isDeclaration(code string) bool {
	return strings.HasPrefix(code, "function ")
}

// Target maps a dialect to the esbuild target that parses it.
func Target(d reserved.Dialect) api.Target {
	if d.Resolve() >= reserved.ES6 {
		return api.ES2015
	}
	return api.ES5
}

// Verify parses code as a script for dialect d and reports every syntax
// error esbuild finds.
func Verify(code string, d reserved.Dialect) error {
	_, err := transform(code, d, false)
	return err
}

// Minify returns code with whitespace, syntax and local identifiers
// minified. The name of a top-level function is kept.
func Minify(code string, d reserved.Dialect) (string, error) {
	return transform(code, d, true)
}

func transform(code string, d reserved.Dialect, minify bool) (string, error) {
	opts := api.TransformOptions{
		Loader:   api.LoaderJS,
		Target:   Target(d),
		LogLevel: api.LogLevelSilent,
	}
	if minify {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}

	script := code + "\n"
	decl := isDeclaration(code)
	if !decl {
		script = "var " + holder + " = " + code + ";\n"
	}

	result := api.Transform(script, opts)
	if len(result.Errors) > 0 {
		var msg strings.Builder
		for _, m := range result.Errors {
			if m.Location != nil {
				fmt.Fprintf(&msg, "%d:%d: ", m.Location.Line, m.Location.Column)
			}
			msg.WriteString(m.Text)
			msg.WriteByte('\n')
		}
		return "", errors.Wrapf(ErrInvalidOutput, "esbuild errors:\n%s", strings.TrimRight(msg.String(), "\n"))
	}

	out := strings.TrimSpace(string(result.Code))
	if decl {
		return out, nil
	}
	out = strings.TrimSuffix(out, ";")
	if i := strings.Index(out, "="); i >= 0 && strings.HasPrefix(out, "var") {
		out = strings.TrimSpace(out[i+1:])
	}
	return out, nil
}
