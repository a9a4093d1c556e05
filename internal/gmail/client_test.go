package gmail

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"

	"github.com/teemow/workspace-mcp/internal/googletest"
)

const messagesPath = "/gmail/v1/users/me/messages"

// concurrentDetailServer serves a listing of ids and answers detail fetches
// only once all of them are in flight, slowest first.
type concurrentDetailServer struct {
	ids      []string
	arrived  sync.WaitGroup
	all      chan struct{}
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	fetches  atomic.Int32
}

func newConcurrentDetailServer(ids ...string) *concurrentDetailServer {
	s := &concurrentDetailServer{ids: ids, all: make(chan struct{})}
	s.arrived.Add(len(ids))
	go func() {
		s.arrived.Wait()
		close(s.all)
	}()
	return s
}

func (s *concurrentDetailServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == messagesPath {
		var stubs []map[string]string
		for _, id := range s.ids {
			stubs = append(stubs, map[string]string{"id": id, "threadId": "t-" + id})
		}
		googletest.WriteJSON(w, map[string]any{"messages": stubs})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, messagesPath+"/")
	s.fetches.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}

	s.arrived.Done()
	select {
	case <-s.all:
	case <-time.After(5 * time.Second):
		googletest.WriteError(w, http.StatusGatewayTimeout, "detail fetches were not concurrent")
		return
	}

	// Earlier messages answer later so completion order is reversed.
	for i, candidate := range s.ids {
		if candidate == id {
			time.Sleep(time.Duration(len(s.ids)-i) * 20 * time.Millisecond)
		}
	}

	googletest.WriteJSON(w, map[string]any{
		"id":      id,
		"snippet": "snippet " + id,
		"payload": map[string]any{
			"headers": []map[string]string{
				{"name": "Subject", "value": "Subject " + id},
				{"name": "From", "value": "sender-" + id + "@example.com"},
				{"name": "Date", "value": "Mon, 1 Jan 2024 10:00:00 +0000"},
			},
		},
	})
}

func TestListMessages_ConcurrentAndOrdered(t *testing.T) {
	srv := newConcurrentDetailServer("m1", "m2", "m3")
	client, err := NewClient(context.Background(), googletest.Server(t, srv)...)
	require.NoError(t, err)

	got, err := client.ListMessages(context.Background(), ListOptions{MaxResults: 3})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "Subject m2", got[1].Subject)
	assert.Equal(t, "sender-m3@example.com", got[2].From)
	assert.Equal(t, "snippet m1", got[0].Snippet)
	assert.Equal(t, int32(3), srv.fetches.Load())
	assert.Equal(t, int32(3), srv.maxSeen.Load())
}

func TestListMessages_Query(t *testing.T) {
	opts := googletest.Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "is:unread", q.Get("q"))
		assert.Equal(t, "5", q.Get("maxResults"))
		assert.Equal(t, []string{"INBOX", "IMPORTANT"}, q["labelIds"])
		googletest.WriteJSON(w, map[string]any{"resultSizeEstimate": 0})
	}))
	client, err := NewClient(context.Background(), opts...)
	require.NoError(t, err)

	got, err := client.ListMessages(context.Background(), ListOptions{
		MaxResults: 5,
		Query:      "is:unread",
		LabelIDs:   []string{"INBOX", "IMPORTANT"},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListMessages_DetailFailure(t *testing.T) {
	opts := googletest.Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == messagesPath {
			googletest.WriteJSON(w, map[string]any{"messages": []map[string]string{{"id": "a"}, {"id": "b"}}})
			return
		}
		googletest.WriteError(w, http.StatusNotFound, "Requested entity was not found.")
	}))
	client, err := NewClient(context.Background(), opts...)
	require.NoError(t, err)

	_, err = client.ListMessages(context.Background(), ListOptions{MaxResults: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Requested entity was not found.")
}

func TestSendMessage(t *testing.T) {
	var raw string
	opts := googletest.Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, messagesPath+"/send", r.URL.Path)
		var msg gmail.Message
		require.NoError(t, decodeJSON(r, &msg))
		raw = msg.Raw
		googletest.WriteJSON(w, map[string]any{"id": "sent-1", "threadId": "t1"})
	}))
	client, err := NewClient(context.Background(), opts...)
	require.NoError(t, err)

	id, err := client.SendMessage(context.Background(), &OutgoingMessage{
		To:      "a@example.com",
		Cc:      "c@example.com",
		Subject: "Grüße",
		Body:    "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "sent-1", id)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	text := string(decoded)
	assert.Contains(t, text, "To: a@example.com\r\n")
	assert.Contains(t, text, "Cc: c@example.com\r\n")
	assert.NotContains(t, text, "Bcc:")
	assert.Contains(t, text, "Subject: =?UTF-8?b?")
	assert.True(t, strings.HasSuffix(text, "\r\n\r\nHello"))
}

func TestSendMessage_RejectsHeaderLineBreaks(t *testing.T) {
	var calls atomic.Int32
	opts := googletest.Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		googletest.WriteJSON(w, map[string]any{"id": "sent-1"})
	}))
	client, err := NewClient(context.Background(), opts...)
	require.NoError(t, err)

	tests := []struct {
		name string
		msg  OutgoingMessage
	}{
		{"subject", OutgoingMessage{To: "a@example.com", Subject: "Hi\r\nBcc: attacker@example.test"}},
		{"to", OutgoingMessage{To: "a@example.com\nBcc: attacker@example.test", Subject: "Hi"}},
		{"cc", OutgoingMessage{To: "a@example.com", Cc: "c@example.com\r", Subject: "Hi"}},
		{"bcc", OutgoingMessage{To: "a@example.com", Bcc: "\nX-Extra: 1", Subject: "Hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.SendMessage(context.Background(), &tt.msg)
			assert.ErrorIs(t, err, ErrHeaderInjection)
		})
	}
	assert.Zero(t, calls.Load(), "nothing may be sent")

	_, err = client.SendMessage(context.Background(), &OutgoingMessage{
		To:      "a@example.com",
		Subject: "Hi",
		Body:    "line one\r\nline two",
	})
	assert.NoError(t, err, "line breaks in the body are fine")
}

func TestExtractBody(t *testing.T) {
	enc := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name    string
		payload *gmail.MessagePart
		want    string
	}{
		{name: "nil payload", payload: nil, want: ""},
		{
			name:    "body data",
			payload: &gmail.MessagePart{Body: &gmail.MessagePartBody{Data: enc("direct body")}},
			want:    "direct body",
		},
		{
			name: "unpadded data",
			payload: &gmail.MessagePart{Body: &gmail.MessagePartBody{
				Data: base64.RawURLEncoding.EncodeToString([]byte("no padding!")),
			}},
			want: "no padding!",
		},
		{
			name: "first text part",
			payload: &gmail.MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{MimeType: "image/png", Body: &gmail.MessagePartBody{Data: enc("png")}},
					{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: enc("plain text")}},
					{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: enc("<p>html</p>")}},
				},
			},
			want: "plain text",
		},
		{
			name: "nested multipart",
			payload: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "multipart/alternative",
						Parts: []*gmail.MessagePart{
							{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: enc("<b>nested</b>")}},
						},
					},
				},
			},
			want: "<b>nested</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractBody(tt.payload))
		})
	}
}

func TestHeader(t *testing.T) {
	payload := &gmail.MessagePart{Headers: []*gmail.MessagePartHeader{{Name: "subject", Value: "Hi"}}}
	assert.Equal(t, "Hi", header(payload, "Subject"))
	assert.Equal(t, "", header(payload, "From"))
	assert.Equal(t, "", header(nil, "From"))
}
