package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrMethod   = "method"
	attrPath     = "path"
	attrStatus   = "status"
	attrService  = "service"
	attrKind     = "kind"
	attrResult   = "result"
	attrTool     = "tool"
	attrResource = "resource"
)

// Metrics records observability metrics. The zero value records nothing.
type Metrics struct {
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	resourceReadsTotal metric.Int64Counter

	oauthExchangeTotal     metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter
}

// NewMetrics creates all instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	counter := func(dst *metric.Int64Counter, name, desc, unit string) {
		if err != nil {
			return
		}
		*dst, err = meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		if err != nil {
			err = fmt.Errorf("failed to create %s counter: %w", name, err)
		}
	}
	histogram := func(dst *metric.Float64Histogram, name, desc string, buckets ...float64) {
		if err != nil {
			return
		}
		*dst, err = meter.Float64Histogram(name,
			metric.WithDescription(desc),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(buckets...),
		)
		if err != nil {
			err = fmt.Errorf("failed to create %s histogram: %w", name, err)
		}
	}

	counter(&m.httpRequestsTotal, "http_requests_total", "Total number of HTTP requests", "{request}")
	histogram(&m.httpRequestDuration, "http_request_duration_seconds", "HTTP request duration in seconds",
		0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0)

	counter(&m.toolInvocationsTotal, "mcp_tool_invocations_total", "Total number of MCP tool invocations", "{invocation}")
	histogram(&m.toolDuration, "mcp_tool_duration_seconds", "MCP tool execution duration in seconds",
		0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0)

	counter(&m.googleAPIOperationsTotal, "google_api_operations_total", "Total number of Google API operations", "{operation}")
	histogram(&m.googleAPIOperationDuration, "google_api_operation_duration_seconds", "Google API operation duration in seconds",
		0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0)

	counter(&m.resourceReadsTotal, "mcp_resource_reads_total", "Total number of MCP resource reads", "{read}")

	counter(&m.oauthExchangeTotal, "oauth_exchange_total", "Total number of authorization code exchanges", "{attempt}")
	counter(&m.oauthTokenRefreshTotal, "oauth_token_refresh_total", "Total number of OAuth token refreshes", "{attempt}")

	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordHTTPRequest records one request served by the HTTP transport.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordToolInvocation records one operation invocation.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordGoogleAPIOperation records one backend call by service and kind
// (list, get, create, update, send, modify).
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, kind, status string, duration time.Duration) {
	if m == nil || m.googleAPIOperationsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrKind, kind),
		attribute.String(attrStatus, status),
	)
	m.googleAPIOperationsTotal.Add(ctx, 1, attrs)
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordResourceRead records one resource read. Resource is the descriptor
// name, never the URI, to keep cardinality bounded.
func (m *Metrics) RecordResourceRead(ctx context.Context, resource, status string) {
	if m == nil || m.resourceReadsTotal == nil {
		return
	}
	m.resourceReadsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResource, resource),
		attribute.String(attrStatus, status),
	))
}

// RecordOAuthExchange records an authorization code exchange.
func (m *Metrics) RecordOAuthExchange(ctx context.Context, result string) {
	if m == nil || m.oauthExchangeTotal == nil {
		return
	}
	m.oauthExchangeTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordOAuthTokenRefresh records a token refresh.
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.oauthTokenRefreshTotal == nil {
		return
	}
	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// ResultOf maps an error to an OAuth result label.
func ResultOf(err error) string {
	if err != nil {
		return OAuthResultFailure
	}
	return OAuthResultSuccess
}
