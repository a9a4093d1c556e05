// Package slides_tools provides MCP operations for Google Slides.
package slides_tools
