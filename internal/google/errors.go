package google

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// ConfigurationError reports missing or invalid credential settings.
type ConfigurationError struct {
	// Fields lists the offending configuration keys, e.g. CLIENT_ID.
	Fields []string
	Reason string
}

func (e *ConfigurationError) Error() string {
	switch {
	case len(e.Fields) > 0 && e.Reason != "":
		return fmt.Sprintf("configuration error: %s: %s", strings.Join(e.Fields, ", "), e.Reason)
	case len(e.Fields) > 0:
		return fmt.Sprintf("configuration error: missing %s", strings.Join(e.Fields, ", "))
	default:
		return "configuration error: " + e.Reason
	}
}

// AuthExchangeError is returned when the identity provider rejects an
// authorization code.
type AuthExchangeError struct {
	Code        string
	Description string
	Err         error
}

func (e *AuthExchangeError) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("authorization code exchange failed: %s: %s", e.Code, e.Description)
	case e.Code != "":
		return "authorization code exchange failed: " + e.Code
	case e.Err != nil:
		return "authorization code exchange failed: " + e.Err.Error()
	default:
		return "authorization code exchange failed"
	}
}

func (e *AuthExchangeError) Unwrap() error {
	return e.Err
}

func newAuthExchangeError(err error) *AuthExchangeError {
	ae := &AuthExchangeError{Err: err}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		ae.Code = re.ErrorCode
		ae.Description = re.ErrorDescription
	}
	return ae
}

// BackendMessage extracts the human-readable message from an error returned
// by a Google API call. Errors that did not come from the API are rendered
// with their own message.
func BackendMessage(err error) string {
	if err == nil {
		return ""
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return err.Error()
}
