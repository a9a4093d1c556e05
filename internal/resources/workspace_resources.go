package resources

import (
	"context"

	"github.com/teemow/workspace-mcp/internal/operation"
)

// OperationLister returns the currently registered operations.
type OperationLister func() []operation.Descriptor

// WorkspaceResources returns the documentation resources. operations
// supplies the tool list of each service page and may be nil.
func WorkspaceResources(operations OperationLister) []operation.ResourceDescriptor {
	return []operation.ResourceDescriptor{
		{
			Name:        "workspace_api_docs",
			URITemplate: "workspace://docs/{service}",
			Description: "API documentation and available tools for a Google Workspace service",
			MIMEType:    "text/markdown",
			Handler: func(_ context.Context, _ string, params map[string]string) (string, error) {
				var ops []operation.Descriptor
				if operations != nil {
					ops = operations()
				}
				return renderServiceDoc(params["service"], ops), nil
			},
		},
		{
			Name:        "workspace_auth_guide",
			URITemplate: "workspace://auth/guide",
			Description: "How to set up OAuth 2.0 access to Google Workspace",
			MIMEType:    "text/markdown",
			Handler: func(context.Context, string, map[string]string) (string, error) {
				return authGuide, nil
			},
		},
	}
}
