package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/yosida95/uritemplate/v3"

	"github.com/teemow/workspace-mcp/internal/instrumentation"
	"github.com/teemow/workspace-mcp/internal/logging"
	"github.com/teemow/workspace-mcp/internal/operation"
)

var (
	// ErrDuplicateOperation is returned when an operation name is registered twice.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrDuplicateResource is returned when a resource name or URI template
	// is registered twice.
	ErrDuplicateResource = errors.New("duplicate resource")

	// ErrUnknownOperation is returned by Invoke for unregistered names.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrUnknownResource is returned by Read when no resource matches a URI.
	ErrUnknownResource = errors.New("unknown resource")
)

// Registry holds the registered descriptors. The zero value is not usable;
// construct one with New.
type Registry struct {
	srv     *mcpserver.MCPServer
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger

	mu         sync.RWMutex
	operations map[string]operation.Descriptor
	resources  map[string]*resource
}

type resource struct {
	desc operation.ResourceDescriptor
	tpl  *uritemplate.Template
}

func (r *resource) static() bool {
	return len(r.tpl.Varnames()) == 0
}

// match returns the placeholder values for uri, or false.
func (r *resource) match(uri string) (map[string]string, bool) {
	if r.static() {
		return map[string]string{}, uri == r.desc.URITemplate
	}
	values := r.tpl.Match(uri)
	if values == nil {
		return nil, false
	}
	params := make(map[string]string, len(r.tpl.Varnames()))
	for _, name := range r.tpl.Varnames() {
		if v := values.Get(name); v.Valid() {
			params[name] = v.String()
		}
	}
	return params, true
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(r *Registry) {
		r.metrics = metrics
	}
}

// WithAuditLogger sets the audit logger.
func WithAuditLogger(audit *instrumentation.AuditLogger) Option {
	return func(r *Registry) {
		r.audit = audit
	}
}

// New creates a registry. srv may be nil, in which case descriptors are
// only available through Invoke and Read.
func New(srv *mcpserver.MCPServer, opts ...Option) *Registry {
	r := &Registry{
		srv:        srv,
		logger:     slog.Default(),
		operations: make(map[string]operation.Descriptor),
		resources:  make(map[string]*resource),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.WithComponent(r.logger, "registry")
	return r
}

// RegisterOperations validates and registers descriptors. Either all of
// them are registered or none is.
func (r *Registry) RegisterOperations(descs ...operation.Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[string]bool, len(descs))
	for _, d := range descs {
		if err := d.Check(); err != nil {
			return err
		}
		if _, exists := r.operations[d.Name]; exists || batch[d.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateOperation, d.Name)
		}
		batch[d.Name] = true
	}

	for _, d := range descs {
		r.operations[d.Name] = d
		if r.srv != nil {
			r.srv.AddTool(d.Tool(), r.toolHandler(d))
		}
	}
	return nil
}

// RegisterResources validates and registers resource descriptors. Either
// all of them are registered or none is.
func (r *Registry) RegisterResources(descs ...operation.ResourceDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	templates := make(map[string]string, len(r.resources)+len(descs))
	for name, res := range r.resources {
		templates[res.desc.URITemplate] = name
	}

	parsed := make([]*resource, 0, len(descs))
	batch := make(map[string]bool, len(descs))
	for _, d := range descs {
		if err := d.Check(); err != nil {
			return err
		}
		if _, exists := r.resources[d.Name]; exists || batch[d.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateResource, d.Name)
		}
		if other, exists := templates[d.URITemplate]; exists {
			return fmt.Errorf("%w: %s shares URI template %s with %s", ErrDuplicateResource, d.Name, d.URITemplate, other)
		}
		tpl, err := uritemplate.New(d.URITemplate)
		if err != nil {
			return fmt.Errorf("resource %s: invalid URI template: %w", d.Name, err)
		}
		batch[d.Name] = true
		templates[d.URITemplate] = d.Name
		parsed = append(parsed, &resource{desc: d, tpl: tpl})
	}

	for _, res := range parsed {
		r.resources[res.desc.Name] = res
		if r.srv == nil {
			continue
		}
		d := res.desc
		if res.static() {
			r.srv.AddResource(
				mcp.NewResource(d.URITemplate, d.Name,
					mcp.WithResourceDescription(d.Description),
					mcp.WithMIMEType(d.ContentType()),
				),
				r.resourceHandler(res),
			)
		} else {
			r.srv.AddResourceTemplate(
				mcp.NewResourceTemplate(d.URITemplate, d.Name,
					mcp.WithTemplateDescription(d.Description),
					mcp.WithTemplateMIMEType(d.ContentType()),
				),
				r.resourceHandler(res),
			)
		}
	}
	return nil
}

// Invoke runs a registered operation with raw arguments.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (operation.Envelope, error) {
	r.mu.RLock()
	d, ok := r.operations[name]
	r.mu.RUnlock()
	if !ok {
		return operation.Envelope{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return r.invoke(ctx, d, args), nil
}

// Read renders the resource matching uri. Static URIs take precedence
// over templates.
func (r *Registry) Read(ctx context.Context, uri string) (string, error) {
	for _, res := range r.sortedResources() {
		if params, ok := res.match(uri); ok {
			return r.read(ctx, res, uri, params), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownResource, uri)
}

// Operations returns the registered operations sorted by name.
func (r *Registry) Operations() []operation.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]operation.Descriptor, 0, len(r.operations))
	for _, d := range r.operations {
		ops = append(ops, d)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Resources returns the registered resources sorted by name.
func (r *Registry) Resources() []operation.ResourceDescriptor {
	res := r.sortedResources()
	out := make([]operation.ResourceDescriptor, len(res))
	for i, rr := range res {
		out[i] = rr.desc
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// sortedResources orders static resources first, then by name.
func (r *Registry) sortedResources() []*resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*resource, 0, len(r.resources))
	for _, rr := range r.resources {
		res = append(res, rr)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].static() != res[j].static() {
			return res[i].static()
		}
		return res[i].desc.Name < res[j].desc.Name
	})
	return res
}

func (r *Registry) toolHandler(d operation.Descriptor) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return r.invoke(ctx, d, req.GetArguments()).CallToolResult(), nil
	}
}

func (r *Registry) resourceHandler(res *resource) func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		uri := req.Params.URI
		params, _ := res.match(uri)
		text := r.read(ctx, res, uri, params)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: res.desc.ContentType(),
				Text:     text,
			},
		}, nil
	}
}

// invoke is the single path every operation call takes.
func (r *Registry) invoke(ctx context.Context, d operation.Descriptor, raw map[string]any) operation.Envelope {
	start := time.Now()
	inv := instrumentation.NewInvocation(d.Name).
		WithService(d.Service, d.Kind).
		WithArgs(raw)

	ctx, span := instrumentation.StartToolSpan(ctx, inv, d.ReadOnly)
	inv.WithSpanContext(ctx)

	env, cause := operation.Execute(ctx, d, raw)
	duration := time.Since(start)

	var failure string
	if env.IsError {
		failure = env.Text()
	}
	inv.Complete(!env.IsError, failure)
	instrumentation.EndSpan(span, !env.IsError, failure)

	r.metrics.RecordToolInvocation(ctx, d.Name, inv.Status(), duration)
	var verr *operation.ValidationError
	if d.Service != "" && !errors.As(cause, &verr) {
		r.metrics.RecordGoogleAPIOperation(ctx, d.Service, d.Kind, inv.Status(), duration)
	}
	r.audit.LogInvocation(ctx, inv)
	r.logCause(ctx, logging.WithOperation(r.logger, d.Name), cause)
	return env
}

func (r *Registry) read(ctx context.Context, res *resource, uri string, params map[string]string) string {
	ctx, span := instrumentation.StartResourceSpan(ctx, res.desc.Name, uri)
	text, cause := operation.Render(ctx, res.desc, uri, params)

	status := instrumentation.StatusSuccess
	if cause != nil {
		status = instrumentation.StatusError
	}
	instrumentation.EndSpan(span, cause == nil, text)
	r.metrics.RecordResourceRead(ctx, res.desc.Name, status)
	r.logCause(ctx, r.logger.With(logging.Resource(res.desc.Name)), cause)
	return text
}

func (r *Registry) logCause(ctx context.Context, logger *slog.Logger, cause error) {
	if cause == nil {
		return
	}
	var perr *operation.PanicError
	if errors.As(cause, &perr) {
		logger.ErrorContext(ctx, "handler panicked", logging.Err(cause), slog.String("stack", string(perr.Stack)))
		return
	}
	logger.DebugContext(ctx, "operation failed", logging.Err(cause))
}
