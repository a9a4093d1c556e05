package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/teemow/workspace-mcp/internal/instrumentation"
	"github.com/teemow/workspace-mcp/internal/logging"
)

const (
	// DefaultHTTPAddr is the default listen address of the HTTP transport.
	DefaultHTTPAddr = ":8080"

	// MCPEndpoint is the path of the streamable HTTP endpoint.
	MCPEndpoint = "/mcp"

	// CallbackPath is the OAuth2 redirect target.
	CallbackPath = "/oauth2callback"

	// maxTrackedClients bounds the per-client limiter table.
	maxTrackedClients = 10000
)

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Addr string

	// CORSOrigins enables CORS for the listed origins. Empty disables CORS.
	CORSOrigins []string

	// RateLimit is the sustained number of requests per second allowed per
	// client address. Zero disables rate limiting.
	RateLimit float64
	// RateBurst defaults to twice the rate limit.
	RateBurst int

	// TrustProxyHeaders takes the client address from X-Forwarded-For /
	// X-Real-IP. Enable only behind a proxy that overwrites these headers.
	TrustProxyHeaders bool

	Metrics *instrumentation.Metrics
	Logger  *slog.Logger
}

// HTTPServer serves MCP over streamable HTTP together with health checks
// and the OAuth2 callback.
type HTTPServer struct {
	config     HTTPConfig
	sc         *ServerContext
	health     *HealthChecker
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// NewHTTPServer builds the router. Nothing listens until Start.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, config HTTPConfig) *HTTPServer {
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &HTTPServer{
		config: config,
		sc:     sc,
		health: NewHealthChecker(sc),
		logger: logging.WithComponent(config.Logger, "http"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if config.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(otelhttp.NewMiddleware("workspace-mcp"))
	r.Use(s.recordRequests)
	if len(config.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: config.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
			ExposedHeaders: []string{"Mcp-Session-Id"},
			MaxAge:         300,
		}))
	}

	s.health.RegisterHealthEndpoints(r)

	r.Group(func(r chi.Router) {
		if config.RateLimit > 0 {
			r.Use(newClientLimiter(config.RateLimit, config.RateBurst).middleware)
		}
		r.Get(CallbackPath, s.handleOAuthCallback)
		r.Handle(MCPEndpoint, mcpserver.NewStreamableHTTPServer(mcpServer,
			mcpserver.WithEndpointPath(MCPEndpoint),
		))
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:              config.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the router.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Health returns the health checker backing the health endpoints.
func (s *HTTPServer) Health() *HealthChecker {
	return s.health
}

// Addr returns the listen address.
func (s *HTTPServer) Addr() string {
	return s.config.Addr
}

// Start serves until Shutdown. It returns nil after a graceful shutdown.
func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server",
		slog.String("addr", s.config.Addr),
		slog.String("endpoint", MCPEndpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown marks the server not ready and drains connections.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	return s.httpServer.Shutdown(ctx)
}

// recordRequests records request counts and latency by route pattern, so
// path parameters do not inflate label cardinality.
func (s *HTTPServer) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.config.Metrics.RecordHTTPRequest(r.Context(), r.Method, path, status, time.Since(start))
	})
}

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	if burst <= 0 {
		burst = int(rps * 2)
		if burst < 1 {
			burst = 1
		}
	}
	return &clientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rate.Limiter),
	}
}

func (l *clientLimiter) allow(client string) bool {
	l.mu.Lock()
	limiter, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= maxTrackedClients {
			l.clients = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.clients[client] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

func (l *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientAddr(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientAddr strips the port from RemoteAddr. RealIP, when enabled, has
// already replaced it with a bare address.
func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
