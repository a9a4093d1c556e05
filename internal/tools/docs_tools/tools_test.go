package docs_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

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

func paragraph(endIndex int, text string) map[string]any {
	return map[string]any{
		"endIndex": endIndex,
		"paragraph": map[string]any{"elements": []map[string]any{
			{"textRun": map[string]any{"content": text}},
		}},
	}
}

func TestGetDocument(t *testing.T) {
	sc := newServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/documents/doc-1", r.URL.Path)
		googletest.WriteJSON(w, map[string]any{
			"documentId": "doc-1",
			"title":      "Meeting Notes",
			"revisionId": "rev-7",
			"body": map[string]any{"content": []map[string]any{
				paragraph(8, "Agenda\n"),
				paragraph(20, "Ship v1.0\n"),
			}},
		})
	}))

	env := run(t, sc, "docs_get_document", map[string]any{"documentId": "doc-1"})
	require.False(t, env.IsError, env.Text())
	assert.Equal(t, "Document Information:\n\nTitle: Meeting Notes\nDocument ID: doc-1\nRevision ID: rev-7\n\nContent:\nAgenda\nShip v1.0\n", env.Text())
}

func TestCreateDocument(t *testing.T) {
	sc := newServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/documents", r.URL.Path)
		var req struct {
			Title string `json:"title"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		googletest.WriteJSON(w, map[string]any{"documentId": "new-doc", "title": req.Title})
	}))

	env := run(t, sc, "docs_create_document", map[string]any{"title": "Plan"})
	require.False(t, env.IsError, env.Text())
	assert.Equal(t, "Document created successfully!\n\nTitle: Plan\nDocument ID: new-doc\nURL: https://docs.google.com/document/d/new-doc/edit", env.Text())
}

func TestAppendText(t *testing.T) {
	var inserted struct {
		Index int64
		Text  string
	}
	sc := newServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ":batchUpdate") {
			var req struct {
				Requests []struct {
					InsertText struct {
						Location struct {
							Index int64 `json:"index"`
						} `json:"location"`
						Text string `json:"text"`
					} `json:"insertText"`
				} `json:"requests"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if assert.Len(t, req.Requests, 1) {
				inserted.Index = req.Requests[0].InsertText.Location.Index
				inserted.Text = req.Requests[0].InsertText.Text
			}
			googletest.WriteJSON(w, map[string]any{"documentId": "doc-1"})
			return
		}
		googletest.WriteJSON(w, map[string]any{
			"documentId": "doc-1",
			"body": map[string]any{"content": []map[string]any{
				{"endIndex": 1, "sectionBreak": map[string]any{}},
				paragraph(25, "Existing text in here.\n"),
			}},
		})
	}))

	env := run(t, sc, "docs_append_text", map[string]any{"documentId": "doc-1", "text": "More."})
	require.False(t, env.IsError, env.Text())
	assert.Equal(t, "Text appended successfully to document doc-1!", env.Text())
	assert.Equal(t, int64(24), inserted.Index)
	assert.Equal(t, "More.", inserted.Text)
}

func TestBackendErrors(t *testing.T) {
	sc := newServerContext(t, googletest.Failing(http.StatusNotFound, "Requested entity was not found."))

	tests := []struct {
		op   string
		args map[string]any
		want string
	}{
		{op: "docs_get_document", args: map[string]any{"documentId": "x"}, want: "Error retrieving document: Requested entity was not found."},
		{op: "docs_create_document", args: map[string]any{"title": "x"}, want: "Error creating document: Requested entity was not found."},
		{op: "docs_append_text", args: map[string]any{"documentId": "x", "text": "y"}, want: "Error appending text: Requested entity was not found."},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			env := run(t, sc, tt.op, tt.args)
			assert.True(t, env.IsError)
			assert.Equal(t, tt.want, env.Text())
		})
	}
}
