package drive

// FolderMimeType is the MIME type of Google Drive folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// FileInfo is the metadata of a file or folder.
type FileInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`

	// Size is not populated for folders and Google documents.
	Size int64 `json:"size,omitempty"`

	// Timestamps are kept as returned by the API (RFC 3339).
	CreatedTime  string `json:"createdTime,omitempty"`
	ModifiedTime string `json:"modifiedTime,omitempty"`

	WebViewLink string   `json:"webViewLink,omitempty"`
	Parents     []string `json:"parents,omitempty"`
}

// ListOptions filters a file listing.
type ListOptions struct {
	// Query is a Drive search expression.
	Query string

	// FolderID restricts the listing to direct children of a folder.
	FolderID string

	MaxResults int64
}

// UploadOptions describes a file to create from in-memory content.
type UploadOptions struct {
	Name     string
	MimeType string
	ParentID string
	Content  string
}
