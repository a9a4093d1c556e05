// Package google owns the OAuth2 credential used to reach Google Workspace APIs.
//
// A Provider is built once from configuration and handed to every operation
// group. It produces authenticated HTTP clients and API client options,
// builds authorization URLs for a set of services, and exchanges
// authorization codes for tokens.
package google
