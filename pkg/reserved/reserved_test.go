package reserved

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsReserved(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		dialect Dialect
		strict  bool
		want    bool
	}{
		{"keyword in es6", "class", ES6, true, true},
		{"keyword in es3", "typeof", ES3, false, true},
		{"literal", "null", ES5, false, true},
		{"await only in es6", "await", ES6, true, true},
		{"await not in es5", "await", ES5, true, false},
		{"await not in es3", "await", ES3, true, false},
		{"volatile in es3", "volatile", ES3, true, true},
		{"volatile not in es5", "volatile", ES5, true, false},
		{"volatile not in es6", "volatile", ES6, true, false},
		{"public strict", "public", ES6, true, true},
		{"public sloppy", "public", ES6, false, false},
		{"es3 ignores strict", "let", ES3, true, false},
		{"zero dialect is latest", "await", 0, true, true},
		{"case sensitive", "Class", ES6, true, false},
		{"plain identifier", "classy", ES6, true, false},
		{"unregistered dialect uses latest", "await", Dialect(42), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsReserved(tt.word, tt.dialect, tt.strict))
		})
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		input   string
		want    Dialect
		wantErr bool
	}{
		{"es3", ES3, false},
		{"3", ES3, false},
		{"ES5", ES5, false},
		{"es2015", ES6, false},
		{"6", ES6, false},
		{"", Latest, false},
		{"es7", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDialect(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown ECMAScript dialect")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialectString(t *testing.T) {
	assert.Equal(t, "es3", ES3.String())
	assert.Equal(t, "es6", Dialect(0).String())
	assert.Equal(t, ES6, Dialect(0).Resolve())
	assert.Equal(t, ES5, ES5.Resolve())
}

func TestList(t *testing.T) {
	assert.Equal(t, []string{"es3", "es5", "es6"}, Names())

	list := List()
	require.Len(t, list, 3)
	assert.Equal(t, ES3, list[0].Dialect)
	assert.Equal(t, ES6, list[2].Dialect)
}

func TestEditionWords(t *testing.T) {
	e, ok := Get(ES5)
	require.True(t, ok)

	sloppy := e.Words(false)
	strict := e.Words(true)
	assert.Contains(t, sloppy, "class")
	assert.NotContains(t, sloppy, "let")
	assert.Contains(t, strict, "let")
	assert.Len(t, strict, len(sloppy)+len(e.StrictOnly()))
	assert.IsNonDecreasing(t, strict)
}

func TestBuilder(t *testing.T) {
	base := NewEdition(Dialect(90), "base").
		Keywords("alpha", "beta").
		StrictKeywords("gamma", "alpha").
		Build()

	// alpha is always reserved, so it is not strict-only
	assert.Equal(t, []string{"gamma"}, base.StrictOnly())

	derived := NewEdition(Dialect(91), "derived").
		Extends(base).
		Keywords("delta").
		Drop("beta").
		Build()

	assert.True(t, derived.IsReserved("alpha", false))
	assert.True(t, derived.IsReserved("delta", false))
	assert.False(t, derived.IsReserved("beta", true))
	assert.True(t, derived.IsReserved("gamma", true))
	assert.False(t, derived.IsReserved("gamma", false))

	// the base edition is untouched
	assert.True(t, base.IsReserved("beta", false))
}
