// Package google_tools provides the OAuth2 operations that bootstrap access
// to Google Workspace:
//   - generate_auth_url: build an authorization URL for a set of services
//   - exchange_code_for_tokens: trade an authorization code for tokens
//
// Tokens obtained through the exchange are stored in the server's
// credential provider and used by every later operation.
package google_tools
