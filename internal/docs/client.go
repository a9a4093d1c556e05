package docs

import (
	"context"
	"fmt"

	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// Client wraps the Google Docs service.
type Client struct {
	service *docs.Service
}

// NewClient creates a Docs client from the given options.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs service: %w", err)
	}
	return &Client{service: svc}, nil
}

// GetDocument retrieves a document and extracts its text.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	doc, err := c.service.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return &Document{
		ID:         doc.DocumentId,
		Title:      doc.Title,
		RevisionID: doc.RevisionId,
		Text:       documentText(doc),
	}, nil
}

// CreateDocument creates an empty document.
func (c *Client) CreateDocument(ctx context.Context, title string) (*Document, error) {
	doc, err := c.service.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return &Document{
		ID:         doc.DocumentId,
		Title:      doc.Title,
		RevisionID: doc.RevisionId,
	}, nil
}

// AppendText inserts text at the end of the document body.
func (c *Client) AppendText(ctx context.Context, documentID, text string) error {
	doc, err := c.service.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get document %s: %w", documentID, err)
	}

	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: appendIndex(doc.Body)},
				Text:     text,
			},
		}},
	}
	if _, err := c.service.Documents.BatchUpdate(documentID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update document %s: %w", documentID, err)
	}
	return nil
}
