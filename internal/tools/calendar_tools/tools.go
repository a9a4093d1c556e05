package calendar_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/teemow/workspace-mcp/internal/calendar"
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

const service = "calendar"

// Operations returns all Google Calendar operations.
func Operations(sc *server.ServerContext) []operation.Descriptor {
	return []operation.Descriptor{
		{
			Name:        "calendar_list_events",
			Description: "List events from Google Calendar",
			Service:     service,
			Kind:        "list",
			ErrorPrefix: "Error listing events",
			ReadOnly:    true,
			Schema: operation.Schema{
				{Name: "calendarId", Type: operation.TypeString, Default: calendar.DefaultCalendarID, Description: "Calendar ID (default is primary)"},
				{Name: "maxResults", Type: operation.TypeInteger, Default: 10, Description: "Maximum number of events to return"},
				{Name: "timeMin", Type: operation.TypeString, Description: "Start time in ISO format (default is now)"},
				{Name: "timeMax", Type: operation.TypeString, Description: "End time in ISO format"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.CalendarClient()
				if err != nil {
					return "", err
				}
				events, err := client.ListEvents(ctx, calendar.ListOptions{
					CalendarID: args.String("calendarId"),
					MaxResults: args.Int("maxResults"),
					TimeMin:    args.String("timeMin"),
					TimeMax:    args.String("timeMax"),
				})
				if err != nil {
					return "", err
				}
				return formatEvents(events), nil
			},
		},
		{
			Name:        "calendar_create_event",
			Description: "Create a new event in Google Calendar",
			Service:     service,
			Kind:        "create",
			ErrorPrefix: "Error creating event",
			Schema: operation.Schema{
				{Name: "calendarId", Type: operation.TypeString, Default: calendar.DefaultCalendarID, Description: "Calendar ID (default is primary)"},
				{Name: "summary", Type: operation.TypeString, Required: true, Description: "Event title/summary"},
				{Name: "start", Type: operation.TypeString, Required: true, Description: "Start time in ISO format"},
				{Name: "end", Type: operation.TypeString, Required: true, Description: "End time in ISO format"},
				{Name: "description", Type: operation.TypeString, Description: "Event description"},
				{Name: "location", Type: operation.TypeString, Description: "Event location"},
				{Name: "attendees", Type: operation.TypeStringArray, Description: "Email addresses of attendees"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.CalendarClient()
				if err != nil {
					return "", err
				}
				event, err := client.CreateEvent(ctx, args.String("calendarId"), calendar.EventInput{
					Summary:     args.String("summary"),
					Description: args.String("description"),
					Location:    args.String("location"),
					Start:       args.String("start"),
					End:         args.String("end"),
					Attendees:   args.Strings("attendees"),
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Event created successfully!\n\nID: %s\nSummary: %s\nStart: %s\nEnd: %s\nLink: %s",
					event.ID, event.Summary, event.Start, event.End, event.HTMLLink), nil
			},
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatEvents(events []calendar.Event) string {
	if len(events) == 0 {
		return "No upcoming events found."
	}
	blocks := make([]string, len(events))
	for i, e := range events {
		blocks[i] = fmt.Sprintf("ID: %s\nSummary: %s\nStart: %s\nEnd: %s\nLocation: %s\nDescription: %s\n",
			e.ID, e.Summary, e.Start, e.End, orNA(e.Location), orNA(e.Description))
	}
	return fmt.Sprintf("Found %d events:\n\n%s", len(events), strings.Join(blocks, "\n"))
}
