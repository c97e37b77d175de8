// Package server exposes the compiler over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/triptjs/pkg/compile"
	"github.com/leapstack-labs/triptjs/pkg/driver"
	"github.com/leapstack-labs/triptjs/pkg/identifier"
	"golang.org/x/sync/errgroup"
)

// Server serves compile requests.
type Server struct {
	addr            string
	driver          *driver.Driver
	ids             identifier.Options
	logger          *slog.Logger
	shutdownTimeout time.Duration
	maxBodyBytes    int64
}

// Config holds server configuration.
type Config struct {
	Addr   string
	Driver *driver.Driver
	// Identifiers are the sanitizer options reported by /reserved. They
	// should match the options Driver compiles with.
	Identifiers     identifier.Options
	Logger          *slog.Logger
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// New creates a Server. Unset Identifiers take identifier.DefaultOptions,
// and a nil Driver compiles with those identifiers and the other defaults.
func New(cfg Config) *Server {
	s := &Server{
		addr:            cfg.Addr,
		driver:          cfg.Driver,
		ids:             cfg.Identifiers,
		logger:          cfg.Logger,
		shutdownTimeout: cfg.ShutdownTimeout,
		maxBodyBytes:    cfg.MaxBodyBytes,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.ids.IsZero() {
		s.ids = identifier.DefaultOptions()
	}
	if s.driver == nil {
		s.driver = driver.New(driver.Options{
			Compile: compile.Config{Identifiers: s.ids},
			Logger:  s.logger,
		})
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 5 * time.Second
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = 1 << 20
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		s.requestID,
		s.logRequests,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Get("/reserved/{word}", s.handleReserved)
	r.With(middleware.AllowContentType("application/json")).Post("/compile", s.handleCompile)

	return r
}

// Serve listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting compile server", "addr", ln.Addr().String())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down compile server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
