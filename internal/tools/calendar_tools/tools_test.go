package calendar_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/workspace-mcp/internal/googletest"
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

func newServerContext(t *testing.T, handler http.Handler) *server.ServerContext {
	t.Helper()
	sc := server.NewServerContext(context.Background(), googletest.Provider(),
		server.WithAPIOptions(googletest.Server(t, handler)...))
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func run(t *testing.T, sc *server.ServerContext, name string, args map[string]any) operation.Envelope {
	t.Helper()
	for _, d := range Operations(sc) {
		if d.Name == name {
			return operation.Run(context.Background(), d, args)
		}
	}
	t.Fatalf("operation %s not found", name)
	return operation.Envelope{}
}

func TestListEvents(t *testing.T) {
	sc := newServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "true", q.Get("singleEvents"))
		assert.Equal(t, "startTime", q.Get("orderBy"))
		assert.Equal(t, "10", q.Get("maxResults"))
		_, err := time.Parse(time.RFC3339, q.Get("timeMin"))
		assert.NoError(t, err, "timeMin defaults to now")

		googletest.WriteJSON(w, map[string]any{"items": []map[string]any{
			{
				"id":       "e1",
				"summary":  "Standup",
				"location": "Room 1",
				"start":    map[string]string{"dateTime": "2024-05-01T09:00:00Z"},
				"end":      map[string]string{"dateTime": "2024-05-01T09:15:00Z"},
			},
			{
				"id":          "e2",
				"summary":     "Holiday",
				"description": "Office closed",
				"start":       map[string]string{"date": "2024-05-02"},
				"end":         map[string]string{"date": "2024-05-03"},
			},
		}})
	}))

	env := run(t, sc, "calendar_list_events", nil)
	require.False(t, env.IsError, env.Text())

	want := "Found 2 events:\n\n" +
		"ID: e1\nSummary: Standup\nStart: 2024-05-01T09:00:00Z\nEnd: 2024-05-01T09:15:00Z\nLocation: Room 1\nDescription: N/A\n" +
		"\n" +
		"ID: e2\nSummary: Holiday\nStart: 2024-05-02\nEnd: 2024-05-03\nLocation: N/A\nDescription: Office closed\n"
	assert.Equal(t, want, env.Text())
}

func TestListEvents_Empty(t *testing.T) {
	sc := newServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendars/team@example.com/events", r.URL.Path)
		assert.Equal(t, "2024-01-01T00:00:00Z", r.URL.Query().Get("timeMin"))
		googletest.WriteJSON(w, map[string]any{"items": []any{}})
	}))

	env := run(t, sc, "calendar_list_events", map[string]any{
		"calendarId": "team@example.com",
		"timeMin":    "2024-01-01T00:00:00Z",
	})
	require.False(t, env.IsError, env.Text())
	assert.Equal(t, "No upcoming events found.", env.Text())
}

func TestCreateEvent(t *testing.T) {
	sc := newServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)

		var event struct {
			Summary string `json:"summary"`
			Start   struct {
				DateTime string `json:"dateTime"`
				TimeZone string `json:"timeZone"`
			} `json:"start"`
			Attendees []struct {
				Email string `json:"email"`
			} `json:"attendees"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		assert.Equal(t, "Review", event.Summary)
		assert.Equal(t, "UTC", event.Start.TimeZone)
		if assert.Len(t, event.Attendees, 2) {
			assert.Equal(t, "a@example.com", event.Attendees[0].Email)
		}

		googletest.WriteJSON(w, map[string]any{
			"id":       "evt-1",
			"summary":  "Review",
			"htmlLink": "https://calendar.google.com/event?eid=evt-1",
			"start":    map[string]string{"dateTime": "2024-05-01T14:00:00Z"},
			"end":      map[string]string{"dateTime": "2024-05-01T15:00:00Z"},
		})
	}))

	env := run(t, sc, "calendar_create_event", map[string]any{
		"summary":   "Review",
		"start":     "2024-05-01T14:00:00Z",
		"end":       "2024-05-01T15:00:00Z",
		"attendees": []any{"a@example.com", "b@example.com"},
	})
	require.False(t, env.IsError, env.Text())
	assert.Equal(t, "Event created successfully!\n\nID: evt-1\nSummary: Review\nStart: 2024-05-01T14:00:00Z\nEnd: 2024-05-01T15:00:00Z\nLink: https://calendar.google.com/event?eid=evt-1", env.Text())
}

func TestCreateEvent_MissingTimes(t *testing.T) {
	sc := newServerContext(t, googletest.Failing(http.StatusInternalServerError, "must not be called"))

	env := run(t, sc, "calendar_create_event", map[string]any{"summary": "Review"})
	assert.True(t, env.IsError)
	assert.Contains(t, env.Text(), "start: is required")
	assert.Contains(t, env.Text(), "end: is required")
}

func TestBackendErrors(t *testing.T) {
	sc := newServerContext(t, googletest.Failing(http.StatusNotFound, "Not Found"))

	env := run(t, sc, "calendar_list_events", nil)
	assert.True(t, env.IsError)
	assert.Equal(t, "Error listing events: Not Found", env.Text())

	env = run(t, sc, "calendar_create_event", map[string]any{"summary": "s", "start": "a", "end": "b"})
	assert.True(t, env.IsError)
	assert.Equal(t, "Error creating event: Not Found", env.Text())
}
