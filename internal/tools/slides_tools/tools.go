package slides_tools

import (
	"context"
	"fmt"

	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

const service = "slides"

// Operations returns all Google Slides operations.
func Operations(sc *server.ServerContext) []operation.Descriptor {
	return []operation.Descriptor{
		{
			Name:        "slides_create_presentation",
			Description: "Create a new Google Slides presentation",
			Service:     service,
			Kind:        "create",
			ErrorPrefix: "Error creating presentation",
			Schema: operation.Schema{
				{Name: "title", Type: operation.TypeString, Required: true, Description: "Title of the presentation"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.SlidesClient()
				if err != nil {
					return "", err
				}
				p, err := client.CreatePresentation(ctx, args.String("title"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Presentation created successfully!\n\nTitle: %s\nPresentation ID: %s\nURL: %s",
					p.Title, p.ID, p.URL()), nil
			},
		},
		{
			Name:        "slides_get_presentation",
			Description: "Get information about a Google Slides presentation",
			Service:     service,
			Kind:        "get",
			ErrorPrefix: "Error retrieving presentation",
			ReadOnly:    true,
			Schema: operation.Schema{
				{Name: "presentationId", Type: operation.TypeString, Required: true, Description: "ID of the presentation to retrieve"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.SlidesClient()
				if err != nil {
					return "", err
				}
				p, err := client.GetPresentation(ctx, args.String("presentationId"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Presentation Information:\n\nTitle: %s\nPresentation ID: %s\nSlides: %d\nRevision ID: %s",
					p.Title, p.ID, p.SlideCount, p.RevisionID), nil
			},
		},
		{
			Name:        "slides_create_slide",
			Description: "Create a new slide in a presentation",
			Service:     service,
			Kind:        "update",
			ErrorPrefix: "Error creating slide",
			Schema: operation.Schema{
				{Name: "presentationId", Type: operation.TypeString, Required: true, Description: "ID of the presentation"},
				{Name: "layoutId", Type: operation.TypeString, Description: "ID of the layout to use (optional)"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.SlidesClient()
				if err != nil {
					return "", err
				}
				slideID, err := client.CreateSlide(ctx, args.String("presentationId"), args.String("layoutId"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Slide created successfully!\n\nSlide ID: %s", slideID), nil
			},
		},
	}
}
