package identifier

import (
	"strings"
	"sync"
	"testing"

	"github.com/leapstack-labs/triptjs/internal/testutil"
	"github.com/leapstack-labs/triptjs/pkg/reserved"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	unreservedNames = []string{
		"foo", "bar", "baz", "qux", "clas", "classy", "va", "variable",
		"func", "functional", "typeo", "typeofit", "nothing",
	}
	reservedNames = []string{"class", "var", "function", "typeof", "new"}
)

func TestSanitize_Unreserved(t *testing.T) {
	for _, name := range unreservedNames {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, Sanitize(name, DefaultOptions()))
		})
	}
}

func TestSanitize_Reserved(t *testing.T) {
	for _, name := range reservedNames {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "_"+name, Sanitize(name, DefaultOptions()))
		})
	}
}

func TestSanitize_Reconcile(t *testing.T) {
	opts := DefaultOptions()
	opts.Reconcile = Suffix("_")

	for _, name := range reservedNames {
		assert.Equal(t, name+"_", Sanitize(name, opts))
	}

	// the pass-through branch ignores the strategy
	for _, name := range unreservedNames {
		assert.Equal(t, name, Sanitize(name, opts))
	}
}

func TestSanitize_Dialect(t *testing.T) {
	onlyInSix := "await"
	onlyInThree := "volatile"

	tests := []struct {
		dialect reserved.Dialect
		word    string
		want    string
	}{
		{reserved.ES3, onlyInSix, onlyInSix},
		{reserved.ES5, onlyInSix, onlyInSix},
		{reserved.ES6, onlyInSix, "_" + onlyInSix},
		{reserved.ES3, onlyInThree, "_" + onlyInThree},
		{reserved.ES5, onlyInThree, onlyInThree},
		{reserved.ES6, onlyInThree, onlyInThree},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String()+"/"+tt.word, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Dialect = tt.dialect
			assert.Equal(t, tt.want, Sanitize(tt.word, opts))
		})
	}
}

func TestSanitize_Strict(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "_public", Sanitize("public", opts))

	opts.Strict = false
	assert.Equal(t, "public", Sanitize("public", opts))
}

func TestSanitize_ZeroOptions(t *testing.T) {
	// zero value: underscore, newest dialect, non-strict
	assert.Equal(t, "_await", Sanitize("await", Options{}))
	assert.Equal(t, "public", Sanitize("public", Options{}))
}

type fakeTable map[string]bool

func (f fakeTable) IsReserved(name string, _ reserved.Dialect, _ bool) bool { return f[name] }

func TestSanitize_CustomTable(t *testing.T) {
	opts := DefaultOptions()
	opts.Table = fakeTable{"foo": true}

	assert.Equal(t, "_foo", Sanitize("foo", opts))
	assert.Equal(t, "class", Sanitize("class", opts))
}

func TestStarlark(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	t.Run("expression", func(t *testing.T) {
		r, err := Starlark(`"$" + name`, logger)
		require.NoError(t, err)

		opts := DefaultOptions()
		opts.Reconcile = r
		assert.Equal(t, "$class", Sanitize("class", opts))
		assert.Equal(t, "foo", Sanitize("foo", opts))
	})

	t.Run("string method", func(t *testing.T) {
		r, err := Starlark(`name + "_" + str(len(name))`, logger)
		require.NoError(t, err)
		assert.Equal(t, "new_3", r("new"))
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Starlark(`name +`, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse reconcile expression")
	})

	t.Run("non-string result", func(t *testing.T) {
		_, err := Starlark(`len(name)`, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want string")
	})

	t.Run("empty result", func(t *testing.T) {
		_, err := Starlark(`""`, logger)
		require.Error(t, err)
	})

	t.Run("runtime failure falls back", func(t *testing.T) {
		// indexing past the probe word's length only fails for short names
		r, err := Starlark(`name[4] + name`, logger)
		require.NoError(t, err)
		assert.Equal(t, "_new", r("new"))
		assert.True(t, strings.HasSuffix(r("class"), "class"))
	})
}

func TestStarlark_StepLimit(t *testing.T) {
	_, err := Starlark(`"".join([str(i) for i in range(1000000)]) + name`, testutil.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many steps")
}

func TestStarlark_Concurrent(t *testing.T) {
	r, err := Starlark(`name.upper() + "_"`, testutil.NewTestLogger(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "CLASS_", r("class"))
		}()
	}
	wg.Wait()
}

func TestThreadPool(t *testing.T) {
	p := newThreadPool(2)
	assert.Equal(t, 0, p.size())

	a, b, c := p.get(), p.get(), p.get()
	assert.NotSame(t, a, b)

	a.Steps = 42
	p.put(a)
	p.put(b)
	p.put(c) // pool full, discarded
	assert.Equal(t, 2, p.size())

	got := p.get()
	assert.Same(t, b, got)
	got = p.get()
	assert.Same(t, a, got)
	assert.Zero(t, got.Steps)
}

func TestOptions_IsZero(t *testing.T) {
	assert.True(t, Options{}.IsZero())
	assert.False(t, DefaultOptions().IsZero())
	assert.False(t, Options{Strict: true}.IsZero())
	assert.False(t, Options{Dialect: reserved.ES5}.IsZero())
	assert.False(t, Options{Reconcile: Suffix("_")}.IsZero())
}
