// Package calendar provides a client for the Google Calendar v3 API.
//
// It lists upcoming events of a calendar, expanded into single instances
// and ordered by start time, and creates events with optional attendees.
package calendar
