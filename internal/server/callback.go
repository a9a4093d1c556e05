package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/logging"
)

// TokenInstructions renders the tokens of a successful exchange together
// with the instruction to persist the refresh token.
func TokenInstructions(tok *oauth2.Token) string {
	return fmt.Sprintf("Tokens received successfully.\n\nAccess Token: %s\nRefresh Token: %s\n\nAdd the refresh token to your .env file as REFRESH_TOKEN=%s",
		tok.AccessToken, tok.RefreshToken, tok.RefreshToken)
}

// handleOAuthCallback completes the authorization code flow started by an
// authorization URL issued by the provider.
func (s *HTTPServer) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		s.logger.Warn("authorization denied", slog.String("error", e))
		http.Error(w, "Authorization failed: "+e, http.StatusBadRequest)
		return
	}

	code := q.Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	provider := s.sc.Provider()
	if !provider.ValidateState(q.Get("state")) {
		http.Error(w, "Invalid or expired state parameter", http.StatusBadRequest)
		return
	}

	tok, err := provider.Exchange(r.Context(), code)
	if err != nil {
		var ae *google.AuthExchangeError
		if errors.As(err, &ae) {
			http.Error(w, "Error exchanging code for tokens: "+google.BackendMessage(err), http.StatusBadRequest)
			return
		}
		s.logger.Error("code exchange failed", logging.Err(err))
		http.Error(w, "Error exchanging code for tokens: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = fmt.Fprint(w, TokenInstructions(tok))
}
