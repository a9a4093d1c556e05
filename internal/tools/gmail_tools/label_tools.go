package gmail_tools

import (
	"context"

	"github.com/teemow/workspace-mcp/internal/gmail"
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

func labelOperations(sc *server.ServerContext) []operation.Descriptor {
	return []operation.Descriptor{
		{
			Name:        "gmail_list_labels",
			Description: "List all Gmail labels",
			Service:     service,
			Kind:        "list",
			ErrorPrefix: "Error listing labels",
			ReadOnly:    true,
			Handler: func(ctx context.Context, _ operation.Args) (string, error) {
				client, err := sc.GmailClient()
				if err != nil {
					return "", err
				}
				labels, err := client.ListLabels(ctx)
				if err != nil {
					return "", err
				}
				return gmail.FormatLabels(labels, false), nil
			},
		},
	}
}
