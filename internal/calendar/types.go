package calendar

// DefaultCalendarID addresses the user's primary calendar.
const DefaultCalendarID = "primary"

// DefaultTimeZone is used for created events.
const DefaultTimeZone = "UTC"

// ListOptions selects the events to list.
type ListOptions struct {
	CalendarID string
	MaxResults int64

	// TimeMin and TimeMax are RFC 3339 timestamps. An empty TimeMin means now.
	TimeMin string
	TimeMax string
}

// Event is a simplified calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string

	// Start and End hold the dateTime of timed events or the date of
	// all-day events.
	Start string
	End   string

	HTMLLink string
}

// EventInput is the input for creating an event.
type EventInput struct {
	Summary     string
	Description string
	Location    string
	Start       string
	End         string
	Attendees   []string
}
