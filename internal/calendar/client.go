package calendar

import (
	"context"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Calendar service.
type Client struct {
	svc *calendar.Service

	// now is replaced in tests.
	now func() time.Time
}

// NewClient creates a Calendar client from the given options.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	return &Client{svc: svc, now: time.Now}, nil
}

// ListEvents lists single event instances ordered by start time.
func (c *Client) ListEvents(ctx context.Context, opts ListOptions) ([]Event, error) {
	calendarID := opts.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	timeMin := opts.TimeMin
	if timeMin == "" {
		timeMin = c.now().UTC().Format(time.RFC3339)
	}

	call := c.svc.Events.List(calendarID).
		Context(ctx).
		TimeMin(timeMin).
		SingleEvents(true).
		OrderBy("startTime")
	if opts.MaxResults > 0 {
		call = call.MaxResults(opts.MaxResults)
	}
	if opts.TimeMax != "" {
		call = call.TimeMax(opts.TimeMax)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		events = append(events, convertEvent(item))
	}
	return events, nil
}

// CreateEvent inserts an event into calendarID. Times are interpreted in UTC.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (*Event, error) {
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start:       &calendar.EventDateTime{DateTime: input.Start, TimeZone: DefaultTimeZone},
		End:         &calendar.EventDateTime{DateTime: input.End, TimeZone: DefaultTimeZone},
	}
	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := c.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	result := convertEvent(created)
	return &result, nil
}

func convertEvent(e *calendar.Event) Event {
	return Event{
		ID:          e.Id,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       eventTime(e.Start),
		End:         eventTime(e.End),
		HTMLLink:    e.HtmlLink,
	}
}

func eventTime(t *calendar.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}
