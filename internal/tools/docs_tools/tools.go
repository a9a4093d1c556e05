package docs_tools

import (
	"context"
	"fmt"

	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

const service = "docs"

// Operations returns all Google Docs operations.
func Operations(sc *server.ServerContext) []operation.Descriptor {
	return []operation.Descriptor{
		{
			Name:        "docs_get_document",
			Description: "Get the content of a Google Doc",
			Service:     service,
			Kind:        "get",
			ErrorPrefix: "Error retrieving document",
			ReadOnly:    true,
			Schema: operation.Schema{
				{Name: "documentId", Type: operation.TypeString, Required: true, Description: "ID of the document to retrieve"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.DocsClient()
				if err != nil {
					return "", err
				}
				doc, err := client.GetDocument(ctx, args.String("documentId"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Document Information:\n\nTitle: %s\nDocument ID: %s\nRevision ID: %s\n\nContent:\n%s",
					doc.Title, doc.ID, doc.RevisionID, doc.Text), nil
			},
		},
		{
			Name:        "docs_create_document",
			Description: "Create a new Google Doc",
			Service:     service,
			Kind:        "create",
			ErrorPrefix: "Error creating document",
			Schema: operation.Schema{
				{Name: "title", Type: operation.TypeString, Required: true, Description: "Title of the document"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.DocsClient()
				if err != nil {
					return "", err
				}
				doc, err := client.CreateDocument(ctx, args.String("title"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Document created successfully!\n\nTitle: %s\nDocument ID: %s\nURL: %s",
					doc.Title, doc.ID, doc.URL()), nil
			},
		},
		{
			Name:        "docs_append_text",
			Description: "Append text to a Google Doc",
			Service:     service,
			Kind:        "update",
			ErrorPrefix: "Error appending text",
			Schema: operation.Schema{
				{Name: "documentId", Type: operation.TypeString, Required: true, Description: "ID of the document to update"},
				{Name: "text", Type: operation.TypeString, Required: true, Description: "Text to append to the document"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.DocsClient()
				if err != nil {
					return "", err
				}
				documentID := args.String("documentId")
				if err := client.AppendText(ctx, documentID, args.String("text")); err != nil {
					return "", err
				}
				return fmt.Sprintf("Text appended successfully to document %s!", documentID), nil
			},
		},
	}
}
