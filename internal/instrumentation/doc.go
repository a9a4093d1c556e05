// Package instrumentation wires OpenTelemetry metrics and tracing into
// workspace-mcp.
//
// A Provider owns the meter and tracer providers. Metrics are exported
// through Prometheus by default, or via OTLP/HTTP or stdout. Tracing is off
// unless TRACING_EXPORTER selects an exporter.
//
// # Metrics
//
//   - mcp_tool_invocations_total, mcp_tool_duration_seconds: per operation and status
//   - google_api_operations_total, google_api_operation_duration_seconds: per service and kind
//   - mcp_resource_reads_total: per resource and status
//   - oauth_exchange_total, oauth_token_refresh_total: per result
//   - http_requests_total, http_request_duration_seconds: streamable HTTP transport
//
// All recording methods are safe on a zero Metrics value, so callers never
// need to check whether instrumentation is enabled.
//
// # Audit
//
// AuditLogger emits one structured record per operation invocation.
// Arguments are never logged, only their names.
package instrumentation
