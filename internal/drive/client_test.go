package drive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drive "google.golang.org/api/drive/v3"

	"github.com/teemow/workspace-mcp/internal/googletest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), googletest.Server(t, handler)...)
	require.NoError(t, err)
	return client
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		folderID string
		want     string
	}{
		{name: "empty", want: ""},
		{name: "query only", query: "name contains 'x'", want: "name contains 'x'"},
		{name: "folder only", folderID: "f1", want: "'f1' in parents"},
		{name: "both", query: "trashed=false", folderID: "f1", want: "trashed=false and 'f1' in parents"},
		{name: "quoted folder", folderID: "a'b", want: `'a\'b' in parents`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.query, tt.folderID))
		})
	}
}

func TestListFiles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/files"))
		assert.Equal(t, "'folder-1' in parents", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		googletest.WriteJSON(w, map[string]any{
			"files": []map[string]any{
				{"id": "a", "name": "report.pdf", "mimeType": "application/pdf", "size": "2048", "createdTime": "2024-01-01T10:00:00Z"},
				{"id": "b", "name": "Notes", "mimeType": "application/vnd.google-apps.document"},
			},
		})
	})

	files, err := client.ListFiles(context.Background(), ListOptions{FolderID: "folder-1", MaxResults: 5})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "report.pdf", files[0].Name)
	assert.Equal(t, int64(2048), files[0].Size)
	assert.Equal(t, "2024-01-01T10:00:00Z", files[0].CreatedTime)
	assert.Zero(t, files[1].Size)
}

func TestCreateFolder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var f drive.File
		require.NoError(t, json.NewDecoder(r.Body).Decode(&f))
		assert.Equal(t, FolderMimeType, f.MimeType)
		assert.Equal(t, []string{"parent"}, f.Parents)
		googletest.WriteJSON(w, map[string]any{"id": "new", "name": f.Name, "webViewLink": "https://drive.google.com/drive/folders/new"})
	})

	folder, err := client.CreateFolder(context.Background(), "Projects", "parent")
	require.NoError(t, err)
	assert.Equal(t, "new", folder.ID)
	assert.Equal(t, "Projects", folder.Name)

	_, err = client.CreateFolder(context.Background(), "", "")
	assert.Error(t, err)
}

func TestUploadFile_SendsContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/upload/")
		assert.Equal(t, "multipart", r.URL.Query().Get("uploadType"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"name":"hello.txt"`)
		assert.Contains(t, string(body), "hello drive")
		googletest.WriteJSON(w, map[string]any{"id": "file-1", "name": "hello.txt", "mimeType": "text/plain"})
	})

	file, err := client.UploadFile(context.Background(), UploadOptions{
		Name:     "hello.txt",
		MimeType: "text/plain",
		Content:  "hello drive",
	})
	require.NoError(t, err)
	assert.Equal(t, "file-1", file.ID)
}

func TestListFiles_BackendError(t *testing.T) {
	client := newTestClient(t, googletest.Failing(http.StatusForbidden, "Insufficient Permission").ServeHTTP)

	_, err := client.ListFiles(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient Permission")
}
