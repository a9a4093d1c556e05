// Package sheets_tools provides MCP operations for Google Sheets: reading
// and writing cell values in A1 notation and creating spreadsheets.
package sheets_tools
