// Package serve provides the serve command, which runs the HTTP API, the
// HTML pages and the realtime update streams.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harborline/mariner/internal/appcontext"
	"github.com/harborline/mariner/internal/cmd/emoji"
	"github.com/harborline/mariner/internal/server"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Serve the JSON API, HTML pages and live updates",
		Long: `Starts the mariner HTTP server.

Features:
  - JSON API for forms, ships, port guides, carousels and markers
  - HTML pages for the forms directory, ship classes and port guides
  - Live conditions refreshed in the background
  - WebSocket (/api/v1/updates/ws) and SSE (/api/v1/updates/stream) updates
  - Response caching, per-IP rate limiting and CORS
  - Graceful shutdown on SIGINT or SIGTERM`,
		Example: `  mariner serve
  mariner serve --port 3000 --host 0.0.0.0
  mariner serve --cors-origins https://crew.example.org
  mariner serve --rate-limit 0 --no-pages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), app, cfg)
		},
	}

	cmd.Flags().IntP("port", "p", defaults.Port, "server port")
	cmd.Flags().String("host", defaults.Host, "bind address")
	cmd.Flags().Bool("cors", false, "enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "allowed CORS origins (comma-separated)")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "API response cache TTL")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().Bool("no-pages", false, "do not serve the HTML pages")
	return cmd
}

func configFromFlags(cmd *cobra.Command) (server.Config, error) {
	cfg := server.DefaultConfig()
	flags := cmd.Flags()

	// These flags are defined in NewCommand, so lookups cannot fail.
	cfg.Port, _ = flags.GetInt("port")
	cfg.Host, _ = flags.GetString("host")
	cfg.CORSEnabled, _ = flags.GetBool("cors")
	cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	cfg.RateLimit, _ = flags.GetInt("rate-limit")
	cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")
	cfg.PathPrefix, _ = flags.GetString("prefix")
	noPages, _ := flags.GetBool("no-pages")
	cfg.PagesEnabled = !noPages

	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return cfg, errors.NewValidationError("port", cfg.Port, "must be between 1 and 65535")
	}
	if cfg.RateLimit < 0 {
		return cfg, errors.NewValidationError("rate-limit", cfg.RateLimit, "must not be negative")
	}
	return cfg, nil
}

func run(ctx context.Context, out io.Writer, app appcontext.Interface, cfg server.Config) error {
	logger := app.Logger()
	client, err := app.Client()
	if err != nil {
		return err
	}

	srv, err := server.New(client, cfg, logger)
	if err != nil {
		return err
	}
	srv.Start()

	if err := client.RefreshOn(ctx); err != nil {
		logger.Debug().Err(err).Msg("Conditions refresher not started")
	}
	defer client.RefreshOff()

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	logger.Info().
		Str("addr", httpServer.Addr).
		Str("prefix", cfg.PathPrefix).
		Bool("pages", cfg.PagesEnabled).
		Int("rate_limit", cfg.RateLimit).
		Msg("Starting server")

	return startWithGracefulShutdown(ctx, out, httpServer, srv, logger)
}

// startWithGracefulShutdown serves until ctx is cancelled, then drains
// connections and stops the background services within
// constants.ShutdownTimeout.
func startWithGracefulShutdown(ctx context.Context, out io.Writer, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		_, _ = fmt.Fprintf(out, "%s Serving on http://%s\n", emoji.Info, httpServer.Addr)
		_, _ = fmt.Fprintln(out, "  Press Ctrl+C to stop")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		if ok && err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutdown signal received")
	_, _ = fmt.Fprintf(out, "\n%s Shutting down...\n", emoji.Stop)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	start := time.Now()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("background services shutdown failed: %w", err)
	}

	logger.Info().Dur("took", time.Since(start)).Msg("Server stopped gracefully")
	_, _ = fmt.Fprintf(out, "%s Server stopped\n", emoji.Success)
	return nil
}
