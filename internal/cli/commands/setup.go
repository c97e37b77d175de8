// Package commands implements the triptjs subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/triptjs/internal/cli/config"
	"github.com/leapstack-labs/triptjs/internal/cli/output"
	"github.com/leapstack-labs/triptjs/pkg/driver"
	"github.com/spf13/cobra"
)

type configKey struct{}

type rendererKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithRenderer returns a copy of ctx carrying r.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return c
		}
	}
	return config.Default()
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer stored on the
// command's context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := GetConfig(ctx)

	r, ok := ctx.Value(rendererKey{}).(*output.Renderer)
	if !ok {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: r,
	}
}

// Driver creates a compile driver from the command's configuration.
func (c *CommandContext) Driver() (*driver.Driver, error) {
	opts, err := c.Cfg.DriverOptions(c.Logger)
	if err != nil {
		return nil, err
	}
	return driver.New(opts), nil
}
