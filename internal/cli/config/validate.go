package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/triptjs/internal/cli/output"
	"github.com/leapstack-labs/triptjs/pkg/compile"
	"github.com/leapstack-labs/triptjs/pkg/driver"
	"github.com/leapstack-labs/triptjs/pkg/identifier"
	"github.com/leapstack-labs/triptjs/pkg/reserved"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := reserved.Get(c.Dialect.Resolve()); !ok {
		return fmt.Errorf("unknown dialect %d (known: %s)", int(c.Dialect), strings.Join(reserved.Names(), ", "))
	}

	switch c.Reconcile {
	case "", ReconcilePrefix, ReconcileSuffix:
	case ReconcileStarlark:
		if strings.TrimSpace(c.ReconcileExpr) == "" {
			return fmt.Errorf("reconcile_expr is required when reconcile is %q", ReconcileStarlark)
		}
	default:
		return fmt.Errorf("unknown reconcile strategy %q (expected prefix, suffix or starlark)", c.Reconcile)
	}

	switch c.Emit {
	case "", EmitJS, EmitAST:
	default:
		return fmt.Errorf("unknown emit format %q (expected js or ast)", c.Emit)
	}

	if !output.Mode(c.OutputFormat).Valid() {
		return fmt.Errorf("unknown output format %q (expected auto, text, markdown or json)", c.OutputFormat)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// ParseLogLevel parses debug, info, warn or error. Empty means warn.
func ParseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}

// IdentifierOptions builds sanitizer options, compiling the Starlark
// reconcile expression when one is configured.
func (c *Config) IdentifierOptions(logger *slog.Logger) (identifier.Options, error) {
	affix := c.ReconcileAffix
	if affix == "" {
		affix = DefaultAffix
	}

	opts := identifier.Options{
		Dialect: c.Dialect.Resolve(),
		Strict:  c.Strict,
		Table:   reserved.ECMAScript,
	}

	switch c.Reconcile {
	case "", ReconcilePrefix:
		opts.Reconcile = identifier.Prefix(affix)
	case ReconcileSuffix:
		opts.Reconcile = identifier.Suffix(affix)
	case ReconcileStarlark:
		fn, err := identifier.Starlark(c.ReconcileExpr, logger)
		if err != nil {
			return identifier.Options{}, fmt.Errorf("failed to compile reconcile_expr: %w", err)
		}
		opts.Reconcile = fn
	default:
		return identifier.Options{}, fmt.Errorf("unknown reconcile strategy %q", c.Reconcile)
	}
	return opts, nil
}

// DriverOptions builds the options for a driver.Driver.
func (c *Config) DriverOptions(logger *slog.Logger) (driver.Options, error) {
	ids, err := c.IdentifierOptions(logger)
	if err != nil {
		return driver.Options{}, err
	}

	opts := driver.Options{
		Compile:     compile.Config{Identifiers: ids},
		Minify:      c.Minify,
		Verify:      c.Verify,
		Concurrency: c.Concurrency,
		Logger:      logger,
	}
	if c.Evaluate {
		opts.Interpreter = driver.Evaluator{}
	}
	return opts, nil
}
