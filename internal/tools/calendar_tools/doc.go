// Package calendar_tools provides MCP operations for Google Calendar.
//
// Listing returns upcoming single event instances ordered by start time.
// Created events use UTC for both start and end.
package calendar_tools
