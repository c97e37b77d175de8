// Package identifier keeps generated JavaScript identifiers clear of the
// reserved words of the target ECMAScript dialect.
package identifier

import (
	"github.com/leapstack-labs/triptjs/pkg/reserved"
)

// Reconciler rewrites a name that collides with a reserved word.
type Reconciler func(name string) string

// Prefix returns a Reconciler that prepends p.
func Prefix(p string) Reconciler {
	return func(name string) string { return p + name }
}

// Suffix returns a Reconciler that appends s.
func Suffix(s string) Reconciler {
	return func(name string) string { return name + s }
}

// Underscore is the default reconciliation strategy.
var Underscore = Prefix("_")

// Options configures Sanitize.
//
// Use DefaultOptions to get the documented defaults. In the zero value a nil
// Reconcile means Underscore, a zero Dialect means reserved.Latest, a nil
// Table means reserved.ECMAScript, and Strict is false.
type Options struct {
	Reconcile Reconciler
	Dialect   reserved.Dialect
	Strict    bool
	Table     reserved.Table
}

// DefaultOptions returns the defaults: prepend "_", newest dialect, strict
// mode words included.
func DefaultOptions() Options {
	return Options{
		Reconcile: Underscore,
		Dialect:   reserved.Latest,
		Strict:    true,
		Table:     reserved.ECMAScript,
	}
}

// IsZero reports whether o is the zero Options, i.e. nothing was configured.
func (o Options) IsZero() bool {
	return o.Reconcile == nil && o.Dialect == 0 && !o.Strict && o.Table == nil
}

// Sanitize returns name unchanged unless it is reserved under opts, in which
// case it returns opts.Reconcile(name). It never fails.
func Sanitize(name string, opts Options) string {
	table := opts.Table
	if table == nil {
		table = reserved.ECMAScript
	}
	if !table.IsReserved(name, opts.Dialect.Resolve(), opts.Strict) {
		return name
	}
	if opts.Reconcile == nil {
		return Underscore(name)
	}
	return opts.Reconcile(name)
}
