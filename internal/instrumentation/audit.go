package instrumentation

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Invocation records a single operation call for the audit log.
type Invocation struct {
	ID        string
	Operation string
	Service   string
	Kind      string
	// ArgNames holds the names of the supplied arguments, never their values.
	ArgNames []string

	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	TraceID string
}

// NewInvocation starts an invocation record with a fresh ID.
func NewInvocation(operation string) *Invocation {
	return &Invocation{
		ID:        uuid.NewString(),
		Operation: operation,
		StartTime: time.Now(),
	}
}

// WithService sets the Google service and operation kind.
func (inv *Invocation) WithService(service, kind string) *Invocation {
	inv.Service = service
	inv.Kind = kind
	return inv
}

// WithArgs records the names of the supplied arguments.
func (inv *Invocation) WithArgs(args map[string]any) *Invocation {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	inv.ArgNames = names
	return inv
}

// WithSpanContext copies the trace ID from ctx, if any.
func (inv *Invocation) WithSpanContext(ctx context.Context) *Invocation {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		inv.TraceID = sc.TraceID().String()
	}
	return inv
}

// Complete stamps the duration and outcome. A failure message comes from
// the rendered envelope, so it is recorded even without a Go error.
func (inv *Invocation) Complete(success bool, message string) *Invocation {
	inv.Duration = time.Since(inv.StartTime)
	inv.Success = success
	if !success {
		inv.Error = message
	}
	return inv
}

// Status returns the status label for the invocation.
func (inv *Invocation) Status() string {
	if inv.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns the audit attributes.
func (inv *Invocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("invocation_id", inv.ID),
		slog.String("operation", inv.Operation),
		slog.Duration("duration", inv.Duration),
		slog.Bool("success", inv.Success),
	}
	if inv.Service != "" {
		attrs = append(attrs, slog.String("service", inv.Service))
	}
	if inv.Kind != "" {
		attrs = append(attrs, slog.String("kind", inv.Kind))
	}
	if len(inv.ArgNames) > 0 {
		attrs = append(attrs, slog.Any("args", inv.ArgNames))
	}
	if inv.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", inv.TraceID))
	}
	if inv.Error != "" {
		attrs = append(attrs, slog.String("error", inv.Error))
	}
	return attrs
}

// AuditLogger writes invocation records.
type AuditLogger struct {
	logger  *slog.Logger
	enabled bool
}

// NewAuditLogger creates an audit logger. A nil logger uses slog.Default().
func NewAuditLogger(logger *slog.Logger, enabled bool) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:  logger.With(slog.String("log_type", "audit")),
		enabled: enabled,
	}
}

// LogInvocation writes one record. Safe on a nil receiver.
func (al *AuditLogger) LogInvocation(ctx context.Context, inv *Invocation) {
	if al == nil || !al.enabled || inv == nil {
		return
	}
	msg := "operation_executed"
	level := slog.LevelInfo
	if !inv.Success {
		msg = "operation_failed"
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(ctx, level, msg, inv.LogAttrs()...)
}
