package docs

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docs "google.golang.org/api/docs/v1"

	"github.com/teemow/workspace-mcp/internal/googletest"
)

func TestGetDocument(t *testing.T) {
	opts := googletest.Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/documents/doc-1"), r.URL.Path)
		googletest.WriteJSON(w, map[string]any{
			"documentId": "doc-1",
			"title":      "Plan",
			"revisionId": "rev-7",
			"body": map[string]any{"content": []map[string]any{
				{"endIndex": 7, "paragraph": map[string]any{"elements": []map[string]any{
					{"textRun": map[string]any{"content": "Hello\n"}},
				}}},
			}},
		})
	}))
	client, err := NewClient(context.Background(), opts...)
	require.NoError(t, err)

	doc, err := client.GetDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Plan", doc.Title)
	assert.Equal(t, "rev-7", doc.RevisionID)
	assert.Equal(t, "Hello\n", doc.Text)
	assert.Equal(t, "https://docs.google.com/document/d/doc-1/edit", doc.URL())
}

func TestAppendText(t *testing.T) {
	var inserted *docs.InsertTextRequest
	opts := googletest.Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			googletest.WriteJSON(w, map[string]any{
				"documentId": "doc-1",
				"body": map[string]any{"content": []map[string]any{
					{"endIndex": 1, "sectionBreak": map[string]any{}},
					{"endIndex": 20, "paragraph": map[string]any{}},
				}},
			})
		case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
			var req docs.BatchUpdateDocumentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Len(t, req.Requests, 1)
			inserted = req.Requests[0].InsertText
			googletest.WriteJSON(w, map[string]any{"documentId": "doc-1"})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	client, err := NewClient(context.Background(), opts...)
	require.NoError(t, err)

	require.NoError(t, client.AppendText(context.Background(), "doc-1", "more"))
	require.NotNil(t, inserted)
	assert.Equal(t, int64(19), inserted.Location.Index)
	assert.Equal(t, "more", inserted.Text)
}

func TestAppendText_MissingDocument(t *testing.T) {
	client, err := NewClient(context.Background(), googletest.Server(t, googletest.Failing(http.StatusNotFound, "Requested entity was not found."))...)
	require.NoError(t, err)

	err = client.AppendText(context.Background(), "nope", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Requested entity was not found.")
}
