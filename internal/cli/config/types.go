// Package config provides configuration management for the triptjs CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/triptjs/pkg/reserved"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect reserved.Dialect `koanf:"dialect"`
	Strict  bool             `koanf:"strict"`

	// Reconcile selects how reserved names are rewritten: prefix, suffix or
	// starlark.
	Reconcile      string `koanf:"reconcile"`
	ReconcileAffix string `koanf:"reconcile_affix"`
	ReconcileExpr  string `koanf:"reconcile_expr"`

	Evaluate    bool   `koanf:"evaluate"`
	Emit        string `koanf:"emit"`
	Minify      bool   `koanf:"minify"`
	Verify      bool   `koanf:"verify"`
	Concurrency int    `koanf:"concurrency"`

	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	LogLevel     string `koanf:"log_level"`

	Server ServerConfig `koanf:"server"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
}

// Reconcile strategies.
const (
	ReconcilePrefix   = "prefix"
	ReconcileSuffix   = "suffix"
	ReconcileStarlark = "starlark"
)

// Emit formats.
const (
	EmitJS  = "js"
	EmitAST = "ast"
)

// Default configuration values.
const (
	DefaultReconcile       = ReconcilePrefix
	DefaultAffix           = "_"
	DefaultEmit            = EmitJS
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel        = "warn"
	DefaultServerAddr      = "127.0.0.1:8787"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Dialect:        reserved.Latest,
		Strict:         true,
		Reconcile:      DefaultReconcile,
		ReconcileAffix: DefaultAffix,
		Emit:           DefaultEmit,
		OutputFormat:   DefaultOutput,
		LogLevel:       DefaultLogLevel,
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxBodyBytes:    DefaultMaxBodyBytes,
		},
	}
}
