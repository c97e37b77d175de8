// Package reserved provides ECMAScript reserved-word tables scoped by
// language edition and strict mode.
//
// Editions are built with a fluent Builder and registered in a package-level
// registry. The built-in ES3, ES5 and ES6 editions are registered when the
// package is loaded.
package reserved

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies an ECMAScript edition. Dialects are ordered: a larger
// value is a newer edition.
type Dialect int

// Supported dialects.
const (
	ES3 Dialect = 3
	ES5 Dialect = 5
	ES6 Dialect = 6
)

// Latest is the newest supported dialect and the default everywhere a
// dialect is left unset.
const Latest = ES6

// String returns the short name of the dialect (e.g. "es6").
func (d Dialect) String() string {
	if d == 0 {
		return Latest.String()
	}
	return "es" + strconv.Itoa(int(d))
}

// Resolve returns d, or Latest when d is the zero value.
func (d Dialect) Resolve() Dialect {
	if d == 0 {
		return Latest
	}
	return d
}

// ParseDialect parses a dialect name. Accepted forms are the edition number
// ("5"), the short name ("es5"), and for ES6 the year name ("es2015").
// Matching is case-insensitive.
func ParseDialect(s string) (Dialect, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Latest, nil
	}
	if e, ok := Lookup(name); ok {
		return e.Dialect, nil
	}
	return 0, fmt.Errorf("unknown ECMAScript dialect %q (known: %s)", s, strings.Join(Names(), ", "))
}

// Table answers reserved-word membership queries.
type Table interface {
	IsReserved(name string, d Dialect, strict bool) bool
}

// ECMAScript is the Table backed by the edition registry.
var ECMAScript Table = registryTable{}

type registryTable struct{}

// IsReserved reports whether name is reserved in dialect d. The zero dialect
// means Latest; a dialect without a registered edition is checked against
// Latest.
func (registryTable) IsReserved(name string, d Dialect, strict bool) bool {
	e, ok := Get(d.Resolve())
	if !ok {
		e, ok = Get(Latest)
		if !ok {
			return false
		}
	}
	return e.IsReserved(name, strict)
}

// IsReserved is shorthand for ECMAScript.IsReserved.
func IsReserved(name string, d Dialect, strict bool) bool {
	return ECMAScript.IsReserved(name, d, strict)
}
