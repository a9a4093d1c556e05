// Package slides provides a client for the Google Slides v1 API.
package slides
