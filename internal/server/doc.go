// Package server provides the runtime plumbing around the MCP server.
//
// # Key Components
//
// ServerContext owns the credential provider and builds Google API clients
// lazily, caching one client per service. Clients resolve the current
// token on every request, so a code exchange performed while the server is
// running takes effect without rebuilding them.
//
// HTTPServer serves the streamable HTTP transport on a chi router together
// with the health endpoints and the OAuth2 redirect target:
//   - /mcp: MCP streamable HTTP endpoint
//   - /healthz, /readyz, /health: liveness, readiness and detailed status
//   - /oauth2callback: exchanges the authorization code and shows the
//     refresh token to store
//
// MetricsServer exposes Prometheus metrics on a dedicated listener.
package server
