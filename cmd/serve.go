package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/workspace-mcp/internal/instrumentation"
	"github.com/teemow/workspace-mcp/internal/logging"
	"github.com/teemow/workspace-mcp/internal/server"
)

const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// serveOptions collects the serve flags.
type serveOptions struct {
	transport   string
	httpAddr    string
	debug       bool
	rateLimit   float64
	rateBurst   int
	corsOrigins string
	trustProxy  bool
	metrics     MetricsConfig
	config      configFlags
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Gmail, Drive,
Calendar, Docs, Sheets and Slides operations to AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp, with health checks
    and the OAuth2 callback on /oauth2callback

Configuration:
  CLIENT_ID, CLIENT_SECRET and REDIRECT_URI are required. REFRESH_TOKEN is
  optional; without it, API calls are unauthenticated until an authorization
  code is exchanged (generate_auth_url / exchange_code_for_tokens).
  Values are read from the environment, a dotenv file (--env-file, default
  .env) and an optional YAML file (--config). The environment wins.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("metrics-enabled") {
				if v := os.Getenv("METRICS_ENABLED"); v != "" {
					opts.metrics.Enabled = v == "true"
				}
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					opts.metrics.Addr = addr
				}
			}
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", server.DefaultHTTPAddr, "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().Float64Var(&opts.rateLimit, "rate-limit", 0, "Requests per second allowed per client address (streamable-http only). 0 disables rate limiting.")
	cmd.Flags().IntVar(&opts.rateBurst, "rate-burst", 0, "Burst size for --rate-limit. Defaults to twice the rate.")
	cmd.Flags().BoolVar(&opts.trustProxy, "trust-proxy-headers", false, "Take the client address for rate limiting from X-Forwarded-For/X-Real-IP. Only enable behind a proxy that sets these headers.")
	cmd.Flags().StringVar(&opts.corsOrigins, "cors-origins", "", "Comma-separated list of allowed CORS origins (streamable-http only)")

	// Metrics server flags
	cmd.Flags().BoolVar(&opts.metrics.Enabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.metrics.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	opts.config.register(cmd)

	return cmd
}

func runServe(opts serveOptions) error {
	if opts.transport != transportStdio && opts.transport != transportStreamableHTTP {
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.transport)
	}

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// stdout carries the protocol on stdio, so logs always go to stderr.
	format := logging.FormatJSON
	if opts.transport == transportStdio {
		format = logging.FormatText
	}
	logger := logging.New(os.Stderr, format, opts.debug)
	slog.SetDefault(logger)

	cfg, err := opts.config.load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	if opts.transport != transportStdio && opts.metrics.Enabled && provider.PrometheusEnabled() {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metrics.Addr,
			InstrumentationProvider: provider,
			Logger:                  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		if err := startBackground(metricsServer.Start); err != nil {
			return fmt.Errorf("metrics server failed to start: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Warn("error shutting down metrics server", logging.Err(err))
			}
		}()
	}

	mcpSrv := newMCPServer()
	a, err := newApp(shutdownCtx, cfg.Credential(), appOptions{
		logger:    logger,
		metrics:   provider.Metrics(),
		audit:     instrumentation.NewAuditLogger(logger, instrConfig.AuditEnabled),
		mcpServer: mcpSrv,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("error during server context shutdown", logging.Err(err))
		}
	}()

	if !a.provider.Authenticated() {
		logger.Warn("no refresh token configured; call generate_auth_url and exchange_code_for_tokens to authorize")
	}

	switch opts.transport {
	case transportStdio:
		return runStdioServer(shutdownCtx, mcpSrv, logger)
	default:
		httpSrv := server.NewHTTPServer(mcpSrv, a.sc, server.HTTPConfig{
			Addr:        opts.httpAddr,
			CORSOrigins: parseCommaSeparatedList(opts.corsOrigins),
			RateLimit:   opts.rateLimit,
			RateBurst:   opts.rateBurst,
			TrustProxyHeaders: opts.trustProxy,
			Metrics:     provider.Metrics(),
			Logger:      logger,
		})
		return runStreamableHTTPServer(shutdownCtx, httpSrv, logger)
	}
}

func runStdioServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, logger *slog.Logger) error {
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- mcpserver.ServeStdio(mcpSrv)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

func runStreamableHTTPServer(ctx context.Context, httpSrv *server.HTTPServer, logger *slog.Logger) error {
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- httpSrv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	}
}

// startBackground runs start in a goroutine and waits briefly for an
// immediate failure such as a port already in use.
func startBackground(start func() error) error {
	errCh := make(chan error, 1)
	go func() {
		if err := start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

// parseCommaSeparatedList splits a comma-separated string into a slice,
// trimming whitespace and dropping empty entries
func parseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
