package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of all spans.
const TracerName = "github.com/teemow/workspace-mcp"

// Span attribute keys.
const (
	SpanAttrTool         = "mcp.tool"
	SpanAttrResource     = "mcp.resource"
	SpanAttrResourceURI  = "mcp.resource_uri"
	SpanAttrInvocationID = "mcp.invocation_id"
	SpanAttrService      = "google.service"
	SpanAttrKind         = "google.operation"
	SpanAttrReadOnly     = "mcp.read_only"
)

// StartToolSpan starts a server span for an operation invocation.
func StartToolSpan(ctx context.Context, inv *Invocation, readOnly bool) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(SpanAttrTool, inv.Operation),
		attribute.String(SpanAttrInvocationID, inv.ID),
		attribute.Bool(SpanAttrReadOnly, readOnly),
	}
	if inv.Service != "" {
		attrs = append(attrs,
			attribute.String(SpanAttrService, inv.Service),
			attribute.String(SpanAttrKind, inv.Kind),
		)
	}
	return otel.Tracer(TracerName).Start(ctx, "tool."+inv.Operation,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// StartResourceSpan starts a server span for a resource read.
func StartResourceSpan(ctx context.Context, name, uri string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, "resource."+name,
		trace.WithAttributes(
			attribute.String(SpanAttrResource, name),
			attribute.String(SpanAttrResourceURI, uri),
		),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// EndSpan sets the span status from the outcome and ends it.
func EndSpan(span trace.Span, success bool, message string) {
	if success {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, message)
	}
	span.End()
}

// TraceID returns the trace ID from ctx, or "".
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return ""
}
