package slides

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	slides "google.golang.org/api/slides/v1"
)

// Client wraps the Google Slides service.
type Client struct {
	service *slides.Service
}

// NewClient creates a Slides client from the given options.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := slides.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Slides service: %w", err)
	}
	return &Client{service: svc}, nil
}

// CreatePresentation creates an empty presentation.
func (c *Client) CreatePresentation(ctx context.Context, title string) (*Presentation, error) {
	p, err := c.service.Presentations.Create(&slides.Presentation{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}
	return convertPresentation(p), nil
}

// GetPresentation retrieves a presentation summary.
func (c *Client) GetPresentation(ctx context.Context, presentationID string) (*Presentation, error) {
	p, err := c.service.Presentations.Get(presentationID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get presentation %s: %w", presentationID, err)
	}
	return convertPresentation(p), nil
}

// CreateSlide appends a slide and returns its object ID. A non-empty
// layoutID references one of the presentation's layouts; otherwise the
// predefined blank layout is used.
func (c *Client) CreateSlide(ctx context.Context, presentationID, layoutID string) (string, error) {
	ref := &slides.LayoutReference{PredefinedLayout: DefaultLayout}
	if layoutID != "" {
		ref = &slides.LayoutReference{LayoutId: layoutID}
	}

	req := &slides.BatchUpdatePresentationRequest{
		Requests: []*slides.Request{{
			CreateSlide: &slides.CreateSlideRequest{SlideLayoutReference: ref},
		}},
	}
	resp, err := c.service.Presentations.BatchUpdate(presentationID, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create slide: %w", err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].CreateSlide == nil {
		return "", fmt.Errorf("failed to create slide: empty reply")
	}
	return resp.Replies[0].CreateSlide.ObjectId, nil
}

func convertPresentation(p *slides.Presentation) *Presentation {
	return &Presentation{
		ID:         p.PresentationId,
		Title:      p.Title,
		RevisionID: p.RevisionId,
		SlideCount: len(p.Slides),
	}
}
