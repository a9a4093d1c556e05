// Package docs_tools provides MCP operations for Google Docs.
//
// docs_get_document renders the document body as plain text, including
// the cell text of tables. docs_append_text inserts text at the end of the
// document body.
package docs_tools
