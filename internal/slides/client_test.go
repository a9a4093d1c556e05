package slides

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	slides "google.golang.org/api/slides/v1"

	"github.com/teemow/workspace-mcp/internal/googletest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), googletest.Server(t, handler)...)
	require.NoError(t, err)
	return client
}

func TestGetPresentation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/presentations/deck-1"), r.URL.Path)
		googletest.WriteJSON(w, map[string]any{
			"presentationId": "deck-1",
			"title":          "Quarterly",
			"revisionId":     "r1",
			"slides":         []map[string]any{{"objectId": "s1"}, {"objectId": "s2"}},
		})
	})

	p, err := client.GetPresentation(context.Background(), "deck-1")
	require.NoError(t, err)
	assert.Equal(t, "Quarterly", p.Title)
	assert.Equal(t, 2, p.SlideCount)
	assert.Equal(t, "https://docs.google.com/presentation/d/deck-1/edit", p.URL())
}

func TestCreateSlide(t *testing.T) {
	tests := []struct {
		name     string
		layoutID string
		check    func(t *testing.T, ref *slides.LayoutReference)
	}{
		{
			name: "default layout",
			check: func(t *testing.T, ref *slides.LayoutReference) {
				assert.Equal(t, DefaultLayout, ref.PredefinedLayout)
				assert.Empty(t, ref.LayoutId)
			},
		},
		{
			name:     "explicit layout",
			layoutID: "layout-9",
			check: func(t *testing.T, ref *slides.LayoutReference) {
				assert.Equal(t, "layout-9", ref.LayoutId)
				assert.Empty(t, ref.PredefinedLayout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.True(t, strings.HasSuffix(r.URL.Path, ":batchUpdate"), r.URL.Path)
				var req slides.BatchUpdatePresentationRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				require.Len(t, req.Requests, 1)
				tt.check(t, req.Requests[0].CreateSlide.SlideLayoutReference)
				googletest.WriteJSON(w, map[string]any{
					"presentationId": "deck-1",
					"replies":        []map[string]any{{"createSlide": map[string]any{"objectId": "slide-new"}}},
				})
			})

			id, err := client.CreateSlide(context.Background(), "deck-1", tt.layoutID)
			require.NoError(t, err)
			assert.Equal(t, "slide-new", id)
		})
	}
}

func TestCreatePresentation_Error(t *testing.T) {
	client := newTestClient(t, googletest.Failing(http.StatusUnauthorized, "Request had invalid authentication credentials.").ServeHTTP)

	_, err := client.CreatePresentation(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid authentication credentials")
}
