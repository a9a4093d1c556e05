package gmail_tools

import (
	"context"
	"fmt"

	"github.com/teemow/workspace-mcp/internal/gmail"
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

func messageOperations(sc *server.ServerContext) []operation.Descriptor {
	return []operation.Descriptor{
		{
			Name:        "gmail_list_messages",
			Description: "List Gmail messages with optional filters",
			Service:     service,
			Kind:        "list",
			ErrorPrefix: "Error listing messages",
			ReadOnly:    true,
			Schema: operation.Schema{
				{Name: "maxResults", Type: operation.TypeInteger, Default: 10, Description: "Maximum number of messages to return"},
				{Name: "query", Type: operation.TypeString, Description: "Search query (same format as Gmail search box)"},
				{Name: "labelIds", Type: operation.TypeStringArray, Description: "Only return messages with these labels"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.GmailClient()
				if err != nil {
					return "", err
				}
				summaries, err := client.ListMessages(ctx, gmail.ListOptions{
					MaxResults: args.Int("maxResults"),
					Query:      args.String("query"),
					LabelIDs:   args.Strings("labelIds"),
				})
				if err != nil {
					return "", err
				}
				return gmail.FormatSummaries(summaries), nil
			},
		},
		{
			Name:        "gmail_get_message",
			Description: "Get a specific Gmail message by ID",
			Service:     service,
			Kind:        "get",
			ErrorPrefix: "Error retrieving message",
			ReadOnly:    true,
			Schema: operation.Schema{
				{Name: "messageId", Type: operation.TypeString, Required: true, Description: "ID of the message to retrieve"},
				{
					Name:        "format",
					Type:        operation.TypeString,
					Default:     gmail.FormatFull,
					Enum:        []string{gmail.FormatFull, gmail.FormatMetadata, gmail.FormatMinimal},
					Description: "Format of the message",
				},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.GmailClient()
				if err != nil {
					return "", err
				}
				msg, err := client.GetMessage(ctx, args.String("messageId"), args.String("format"))
				if err != nil {
					return "", err
				}
				return gmail.FormatMessage(msg), nil
			},
		},
		{
			Name:        "gmail_send_message",
			Description: "Send a new email message",
			Service:     service,
			Kind:        "send",
			ErrorPrefix: "Error sending email",
			Schema: operation.Schema{
				{Name: "to", Type: operation.TypeString, Required: true, Description: "Recipient email address"},
				{Name: "subject", Type: operation.TypeString, Required: true, Description: "Email subject"},
				{Name: "body", Type: operation.TypeString, Required: true, Description: "Email body content"},
				{Name: "cc", Type: operation.TypeString, Description: "CC recipients"},
				{Name: "bcc", Type: operation.TypeString, Description: "BCC recipients"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.GmailClient()
				if err != nil {
					return "", err
				}
				id, err := client.SendMessage(ctx, &gmail.OutgoingMessage{
					To:      args.String("to"),
					Cc:      args.String("cc"),
					Bcc:     args.String("bcc"),
					Subject: args.String("subject"),
					Body:    args.String("body"),
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Email sent successfully!\nMessage ID: %s", id), nil
			},
		},
		{
			Name:        "gmail_modify_message",
			Description: "Modify a message's labels",
			Service:     service,
			Kind:        "modify",
			ErrorPrefix: "Error modifying message",
			Schema: operation.Schema{
				{Name: "messageId", Type: operation.TypeString, Required: true, Description: "ID of the message to modify"},
				{Name: "addLabelIds", Type: operation.TypeStringArray, Description: "Labels to add to the message"},
				{Name: "removeLabelIds", Type: operation.TypeStringArray, Description: "Labels to remove from the message"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.GmailClient()
				if err != nil {
					return "", err
				}
				msg, err := client.ModifyMessage(ctx, args.String("messageId"), args.Strings("addLabelIds"), args.Strings("removeLabelIds"))
				if err != nil {
					return "", err
				}
				return gmail.FormatModified(msg), nil
			},
		},
	}
}
