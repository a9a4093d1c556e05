// Package drive_tools provides MCP operations for Google Drive: listing
// files, creating folders and uploading text content as new files.
package drive_tools
