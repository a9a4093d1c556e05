// Package gmail wraps the Gmail API for the operations exposed by the server:
// listing, reading, sending and relabeling messages, listing labels and
// reading threads.
package gmail
