package commands

import (
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/triptjs/internal/server"
	"github.com/leapstack-labs/triptjs/pkg/driver"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiler over HTTP",
		Long: `Start an HTTP server exposing the compiler.

Endpoints:
  POST /compile          Compile a JSON tript AST (?emit=js|ast)
  GET  /reserved/{word}  Report where a word is reserved and how it is rewritten
  GET  /healthz          Liveness check

Compilation uses the same configuration as the compile command.`,
		Example: `  # Serve on the default address
  triptjs serve

  # Serve ES5 output on all interfaces
  triptjs serve --addr :8787 --dialect es5`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default: 127.0.0.1:8787)")
	cmd.Flags().Bool("minify", false, "Minify the generated code with esbuild")
	cmd.Flags().Bool("verify", false, "Parse the generated code with esbuild and fail on syntax errors")
	cmd.Flags().Bool("evaluate", false, "Fold closed expressions to a literal before compiling")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	opts, err := cfg.DriverOptions(cmdCtx.Logger)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:            cfg.Server.Addr,
		Driver:          driver.New(opts),
		Identifiers:     opts.Compile.Identifiers,
		Logger:          cmdCtx.Logger,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmdCtx.Renderer.Muted("Listening on " + cfg.Server.Addr)
	return srv.Serve(ctx)
}
