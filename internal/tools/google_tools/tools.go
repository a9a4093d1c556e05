package google_tools

import (
	"context"
	"fmt"

	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

// Operations returns the OAuth2 operations.
func Operations(sc *server.ServerContext) []operation.Descriptor {
	return []operation.Descriptor{
		{
			Name:        "generate_auth_url",
			Description: "Generate an OAuth2 authorization URL for Google Workspace APIs",
			Service:     "oauth",
			Kind:        "url",
			ErrorPrefix: "Error generating auth URL",
			ReadOnly:    true,
			Schema: operation.Schema{
				{
					Name:        "services",
					Type:        operation.TypeStringArray,
					Required:    true,
					Enum:        google.ServiceNames(),
					Description: "Google services to request access for",
				},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				return handleGenerateAuthURL(sc, args)
			},
		},
		{
			Name:        "exchange_code_for_tokens",
			Description: "Exchange an authorization code for OAuth2 tokens",
			Service:     "oauth",
			Kind:        "exchange",
			ErrorPrefix: "Error exchanging code for tokens",
			Schema: operation.Schema{
				{Name: "code", Type: operation.TypeString, Required: true, Description: "Authorization code from the OAuth2 flow"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				tok, err := sc.Provider().Exchange(ctx, args.String("code"))
				if err != nil {
					return "", err
				}
				return server.TokenInstructions(tok), nil
			},
		},
	}
}

func handleGenerateAuthURL(sc *server.ServerContext, args operation.Args) (string, error) {
	scopes, err := google.ScopesFor(args.Strings("services")...)
	if err != nil {
		return "", err
	}
	authURL, err := sc.Provider().AuthCodeURL(scopes)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Authorization URL: %s\n\nOpen this URL in a browser to authorize the application.", authURL), nil
}
