package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/triptjs/internal/testutil"
	"github.com/leapstack-labs/triptjs/pkg/driver"
	"github.com/leapstack-labs/triptjs/pkg/identifier"
	"github.com/leapstack-labs/triptjs/pkg/reserved"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "triptjs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	flags.Bool("strict", true, "")
	flags.String("reconcile", "", "")
	flags.String("output", "", "")
	flags.String("addr", "", "")
	flags.Int("concurrency", 0, "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, reserved.ES6, cfg.Dialect)
	assert.True(t, cfg.Strict)
	assert.Equal(t, ReconcilePrefix, cfg.Reconcile)
	assert.Equal(t, "_", cfg.ReconcileAffix)
	assert.Equal(t, EmitJS, cfg.Emit)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
dialect: es5
strict: false
reconcile: suffix
reconcile_affix: "$"
minify: true
server:
  addr: ":9000"
  shutdown_timeout: 2s
`)

	l := NewLoader()
	cfg, err := l.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, l.ConfigFileUsed())
	assert.Equal(t, reserved.ES5, cfg.Dialect)
	assert.False(t, cfg.Strict)
	assert.Equal(t, ReconcileSuffix, cfg.Reconcile)
	assert.Equal(t, "$", cfg.ReconcileAffix)
	assert.True(t, cfg.Minify)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadConfig_SearchesParentDirectories(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "dialect: es3\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	l := NewLoader()
	cfg, err := l.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, reserved.ES3, cfg.Dialect)
	assert.Equal(t, "triptjs.yaml", filepath.Base(l.ConfigFileUsed()))
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "dialect: es3\noutput: text\nconcurrency: 2\n")

	t.Setenv("TRIPTJS_DIALECT", "es5")
	t.Setenv("TRIPTJS_OUTPUT", "json")
	t.Setenv("TRIPTJS_SERVER__ADDR", ":7000")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--dialect", "es2015"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, reserved.ES6, cfg.Dialect, "flag beats env and file")
	assert.Equal(t, "json", cfg.OutputFormat, "env beats file")
	assert.Equal(t, 2, cfg.Concurrency, "file beats defaults")
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.True(t, cfg.Strict, "unchanged flags do not override")
}

func TestLoadConfig_AddrFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--addr", ":1234"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":1234", cfg.Server.Addr)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"unknown dialect", "dialect: es7\n", "unknown ECMAScript dialect"},
		{"unregistered dialect number", "dialect: 4\n", "unknown dialect 4"},
		{"unknown reconcile", "reconcile: random\n", "unknown reconcile strategy"},
		{"starlark without expression", "reconcile: starlark\n", "reconcile_expr is required"},
		{"unknown emit", "emit: wasm\n", "unknown emit format"},
		{"unknown output", "output: html\n", "unknown output format"},
		{"bad log level", "log_level: loud\n", "invalid log_level"},
		{"negative concurrency", "concurrency: -1\n", "concurrency must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestIdentifierOptions(t *testing.T) {
	logger := testutil.NewTestLogger(t)

	tests := []struct {
		name string
		cfg  Config
		in   string
		want string
	}{
		{"default prefix", Config{Reconcile: ReconcilePrefix, Strict: true}, "class", "_class"},
		{"custom prefix", Config{Reconcile: ReconcilePrefix, ReconcileAffix: "$", Strict: true}, "class", "$class"},
		{"suffix", Config{Reconcile: ReconcileSuffix, ReconcileAffix: "_"}, "class", "class_"},
		{"starlark", Config{Reconcile: ReconcileStarlark, ReconcileExpr: `"r_" + name`}, "enum", "r_enum"},
		{"non strict keeps public", Config{Reconcile: ReconcilePrefix, Strict: false}, "public", "public"},
		{"es5 keeps await", Config{Dialect: reserved.ES5, Reconcile: ReconcilePrefix}, "await", "await"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.cfg.IdentifierOptions(logger)
			require.NoError(t, err)
			assert.Equal(t, tt.want, identifier.Sanitize(tt.in, opts))
		})
	}
}

func TestIdentifierOptions_BadStarlark(t *testing.T) {
	cfg := Config{Reconcile: ReconcileStarlark, ReconcileExpr: "name +"}
	_, err := cfg.IdentifierOptions(testutil.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile reconcile_expr")
}

func TestDriverOptions(t *testing.T) {
	cfg := Default()
	cfg.Minify = true
	cfg.Concurrency = 4

	opts, err := cfg.DriverOptions(testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.True(t, opts.Minify)
	assert.False(t, opts.Verify)
	assert.Equal(t, 4, opts.Concurrency)
	assert.Nil(t, opts.Interpreter)
	assert.Equal(t, reserved.ES6, opts.Compile.Identifiers.Dialect)

	cfg.Evaluate = true
	opts, err = cfg.DriverOptions(testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, driver.Evaluator{}, opts.Interpreter)
}
