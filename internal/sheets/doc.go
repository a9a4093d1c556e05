// Package sheets provides a client for the Google Sheets v4 API.
//
// Cell values are exchanged as strings. Updates are sent with the
// USER_ENTERED input option, so the values are parsed as if typed into
// the spreadsheet UI.
package sheets
