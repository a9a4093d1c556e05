// Package registry collects operation and resource descriptors from
// independent groups and registers them with the MCP server.
//
// Every operation is served through the same wrapper: arguments are
// validated against the descriptor schema, the handler outcome is shaped
// into an envelope, and the invocation is traced, counted and written to
// the audit log. Resources follow the same path with URI template
// matching in place of argument validation.
//
// Invoke and Read dispatch directly, without going through the MCP wire
// protocol; the CLI and tests use them.
package registry
