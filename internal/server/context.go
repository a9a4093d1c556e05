package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"google.golang.org/api/option"

	"github.com/teemow/workspace-mcp/internal/calendar"
	"github.com/teemow/workspace-mcp/internal/docs"
	"github.com/teemow/workspace-mcp/internal/drive"
	"github.com/teemow/workspace-mcp/internal/gmail"
	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/sheets"
	"github.com/teemow/workspace-mcp/internal/slides"
)

// ErrShutdown is returned for client requests after Shutdown.
var ErrShutdown = errors.New("server is shutting down")

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx        context.Context
	cancel     context.CancelFunc
	provider   *google.Provider
	apiOptions []option.ClientOption
	logger     *slog.Logger

	mu             sync.Mutex
	gmailClient    *gmail.Client
	driveClient    *drive.Client
	calendarClient *calendar.Client
	docsClient     *docs.Client
	sheetsClient   *sheets.Client
	slidesClient   *slides.Client
	shutdown       bool
}

// ContextOption configures a ServerContext.
type ContextOption func(*ServerContext)

// WithAPIOptions appends client options to every Google API client, after
// the provider's own options. Tests use it to redirect clients to a fake
// endpoint.
func WithAPIOptions(opts ...option.ClientOption) ContextOption {
	return func(sc *ServerContext) {
		sc.apiOptions = append(sc.apiOptions, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(sc *ServerContext) {
		sc.logger = logger
	}
}

// NewServerContext creates a new server context. No client is built until
// first use.
func NewServerContext(ctx context.Context, provider *google.Provider, opts ...ContextOption) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	sc := &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Provider returns the credential provider.
func (sc *ServerContext) Provider() *google.Provider {
	return sc.provider
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// GmailClient returns the Gmail client, creating it on first use.
func (sc *ServerContext) GmailClient() (*gmail.Client, error) {
	return lazyClient(sc, &sc.gmailClient, gmail.NewClient)
}

// DriveClient returns the Drive client, creating it on first use.
func (sc *ServerContext) DriveClient() (*drive.Client, error) {
	return lazyClient(sc, &sc.driveClient, drive.NewClient)
}

// CalendarClient returns the Calendar client, creating it on first use.
func (sc *ServerContext) CalendarClient() (*calendar.Client, error) {
	return lazyClient(sc, &sc.calendarClient, calendar.NewClient)
}

// DocsClient returns the Docs client, creating it on first use.
func (sc *ServerContext) DocsClient() (*docs.Client, error) {
	return lazyClient(sc, &sc.docsClient, docs.NewClient)
}

// SheetsClient returns the Sheets client, creating it on first use.
func (sc *ServerContext) SheetsClient() (*sheets.Client, error) {
	return lazyClient(sc, &sc.sheetsClient, sheets.NewClient)
}

// SlidesClient returns the Slides client, creating it on first use.
func (sc *ServerContext) SlidesClient() (*slides.Client, error) {
	return lazyClient(sc, &sc.slidesClient, slides.NewClient)
}

type clientConstructor[T any] func(ctx context.Context, opts ...option.ClientOption) (*T, error)

// lazyClient returns *slot, building it with newClient when unset.
func lazyClient[T any](sc *ServerContext, slot **T, newClient clientConstructor[T]) (*T, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil, ErrShutdown
	}
	if *slot != nil {
		return *slot, nil
	}

	opts, err := sc.provider.ClientOptions(sc.ctx)
	if err != nil {
		return nil, err
	}
	opts = append(opts, sc.apiOptions...)

	client, err := newClient(sc.ctx, opts...)
	if err != nil {
		return nil, err
	}
	*slot = client
	return client, nil
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
