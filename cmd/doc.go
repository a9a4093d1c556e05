// Package cmd implements the command-line interface for workspace-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server over stdio or streamable HTTP
//   - auth url / auth exchange: Run the OAuth2 authorization code flow
//   - call: Invoke one operation or read one resource and print the result
//   - generate-docs: Generate markdown documentation for all operations and resources
//   - version: Display version information
package cmd
