// Package resources provides the read-only MCP resources of the server.
//
// Gmail resources expose a message, a thread and the label list of the
// authenticated mailbox. Workspace resources expose an API documentation
// catalog per service and an authentication setup guide.
//
// Resource handlers never fail the read: backend errors and unknown
// identifiers are rendered as explanatory text.
package resources
