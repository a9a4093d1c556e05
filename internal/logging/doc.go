// Package logging provides structured logging utilities for workspace-mcp.
//
// All components log through log/slog. This package keeps attribute names
// consistent and provides the helpers used when logging operation
// invocations, resource reads and OAuth exchanges.
//
// # Usage Patterns
//
//	logger := logging.WithOperation(slog.Default(), "gmail_list_messages")
//	logger.Info("operation finished", logging.Status(logging.StatusSuccess))
//
// Tokens must never be logged directly:
//
//	logger.Debug("token refreshed", logging.Token(tok.AccessToken))
//
// The standard error stream is the only safe log destination when the
// server speaks MCP over stdio, so New always writes to the writer it is
// given and never to stdout implicitly.
package logging
