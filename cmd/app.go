package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/workspace-mcp/internal/config"
	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/instrumentation"
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/registry"
	"github.com/teemow/workspace-mcp/internal/resources"
	"github.com/teemow/workspace-mcp/internal/server"
	"github.com/teemow/workspace-mcp/internal/tools/calendar_tools"
	"github.com/teemow/workspace-mcp/internal/tools/docs_tools"
	"github.com/teemow/workspace-mcp/internal/tools/drive_tools"
	"github.com/teemow/workspace-mcp/internal/tools/gmail_tools"
	"github.com/teemow/workspace-mcp/internal/tools/google_tools"
	"github.com/teemow/workspace-mcp/internal/tools/sheets_tools"
	"github.com/teemow/workspace-mcp/internal/tools/slides_tools"
)

// serverName is announced to MCP clients.
const serverName = "Google Workspace API"

// configFlags are shared by every command that needs credentials.
type configFlags struct {
	configFile string
	envFile    string
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "Path to a YAML config file (client_id, client_secret, redirect_uri, refresh_token)")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to a dotenv file. Defaults to .env in the working directory when present.")
}

// load reads and validates the configuration.
func (f *configFlags) load() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: f.configFile, EnvFile: f.envFile})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// appOptions carries the optional observability hooks of an app.
type appOptions struct {
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger
	apiOpts []server.ContextOption
	// mcpServer is nil for commands that only dispatch directly.
	mcpServer *mcpserver.MCPServer
}

// app wires the credential provider, the server context and the registry.
type app struct {
	provider *google.Provider
	sc       *server.ServerContext
	registry *registry.Registry
}

// newApp registers every operation group and resource. Registration
// failures (for example duplicate names) abort startup.
func newApp(ctx context.Context, cred google.Credential, opts appOptions) (*app, error) {
	if opts.logger == nil {
		opts.logger = slog.Default()
	}

	provider := google.NewProvider(cred,
		google.WithLogger(opts.logger),
		google.WithHooks(google.Hooks{
			OnRefresh: func(err error) {
				opts.metrics.RecordOAuthTokenRefresh(context.Background(), instrumentation.ResultOf(err))
			},
			OnExchange: func(err error) {
				opts.metrics.RecordOAuthExchange(context.Background(), instrumentation.ResultOf(err))
			},
		}),
	)

	scOpts := append([]server.ContextOption{server.WithLogger(opts.logger)}, opts.apiOpts...)
	sc := server.NewServerContext(ctx, provider, scOpts...)

	reg := registry.New(opts.mcpServer,
		registry.WithLogger(opts.logger),
		registry.WithMetrics(opts.metrics),
		registry.WithAuditLogger(opts.audit),
	)

	groups := []struct {
		name string
		ops  []operation.Descriptor
	}{
		{"Google", google_tools.Operations(sc)},
		{"Gmail", gmail_tools.Operations(sc)},
		{"Drive", drive_tools.Operations(sc)},
		{"Calendar", calendar_tools.Operations(sc)},
		{"Docs", docs_tools.Operations(sc)},
		{"Sheets", sheets_tools.Operations(sc)},
		{"Slides", slides_tools.Operations(sc)},
	}
	for _, g := range groups {
		if err := reg.RegisterOperations(g.ops...); err != nil {
			_ = sc.Shutdown()
			return nil, fmt.Errorf("failed to register %s tools: %w", g.name, err)
		}
	}

	if err := reg.RegisterResources(resources.GmailResources(sc)...); err != nil {
		_ = sc.Shutdown()
		return nil, fmt.Errorf("failed to register Gmail resources: %w", err)
	}
	if err := reg.RegisterResources(resources.WorkspaceResources(reg.Operations)...); err != nil {
		_ = sc.Shutdown()
		return nil, fmt.Errorf("failed to register workspace resources: %w", err)
	}

	return &app{provider: provider, sc: sc, registry: reg}, nil
}

// Close releases the server context.
func (a *app) Close() error {
	return a.sc.Shutdown()
}

// newMCPServer creates the protocol server with tool and resource support.
func newMCPServer() *mcpserver.MCPServer {
	return mcpserver.NewMCPServer(serverName, version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)
}

// quietLogger discards everything below warnings. Used by one-shot
// commands whose stdout is the result.
func quietLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
