// Package googletest fakes Google REST endpoints for tests.
package googletest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"

	"github.com/teemow/workspace-mcp/internal/google"
)

// Server starts an httptest server serving handler and returns client
// options that point Google API services at it.
func Server(t testing.TB, handler http.Handler) []option.ClientOption {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return []option.ClientOption{
		option.WithEndpoint(srv.URL + "/"),
		option.WithHTTPClient(srv.Client()),
	}
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a Google API error body, which the client libraries
// decode into *googleapi.Error.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"errors": []map[string]any{
				{"message": message, "reason": http.StatusText(code)},
			},
		},
	})
}

// Failing returns a handler that rejects every request.
func Failing(code int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, code, message)
	})
}

// Provider returns a provider with a complete client registration and a
// stored access token. Token requests are never made while the access
// token has no expiry.
func Provider() *google.Provider {
	return google.NewProvider(google.Credential{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURI:  "http://localhost:8080/oauth2callback",
		AccessToken:  "test-access",
	})
}
