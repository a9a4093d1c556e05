package resources

import (
	"context"

	"github.com/teemow/workspace-mcp/internal/gmail"
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

// GmailResources returns the Gmail resources.
func GmailResources(sc *server.ServerContext) []operation.ResourceDescriptor {
	return []operation.ResourceDescriptor{
		{
			Name:        "gmail_message",
			URITemplate: "gmail://message/{messageId}",
			Description: "A Gmail message with its headers and body",
			ErrorPrefix: "Error retrieving message",
			Handler: func(ctx context.Context, _ string, params map[string]string) (string, error) {
				client, err := sc.GmailClient()
				if err != nil {
					return "", err
				}
				msg, err := client.GetMessage(ctx, params["messageId"], gmail.FormatFull)
				if err != nil {
					return "", err
				}
				return gmail.FormatMessage(msg), nil
			},
		},
		{
			Name:        "gmail_thread",
			URITemplate: "gmail://thread/{threadId}",
			Description: "All messages of a Gmail thread in order",
			ErrorPrefix: "Error retrieving thread",
			Handler: func(ctx context.Context, _ string, params map[string]string) (string, error) {
				client, err := sc.GmailClient()
				if err != nil {
					return "", err
				}
				thread, err := client.GetThread(ctx, params["threadId"])
				if err != nil {
					return "", err
				}
				return gmail.FormatThread(thread), nil
			},
		},
		{
			Name:        "gmail_labels",
			URITemplate: "gmail://labels",
			Description: "The labels of the mailbox with message counts",
			ErrorPrefix: "Error retrieving labels",
			Handler: func(ctx context.Context, _ string, _ map[string]string) (string, error) {
				client, err := sc.GmailClient()
				if err != nil {
					return "", err
				}
				labels, err := client.ListLabels(ctx)
				if err != nil {
					return "", err
				}
				return gmail.FormatLabels(labels, true), nil
			},
		},
	}
}
