package drive

import (
	"context"
	"fmt"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	listFields = "files(id, name, mimeType, webViewLink, createdTime, modifiedTime, size)"
	fileFields = "id, name, mimeType, webViewLink, parents"
)

// Client wraps the Google Drive API service.
type Client struct {
	service *drive.Service
}

// NewClient creates a Drive client from the given options.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Client{service: svc}, nil
}

// BuildQuery combines a search expression with a parent folder restriction.
func BuildQuery(query, folderID string) string {
	if folderID == "" {
		return query
	}
	parent := fmt.Sprintf("'%s' in parents", strings.ReplaceAll(folderID, "'", `\'`))
	if query == "" {
		return parent
	}
	return query + " and " + parent
}

// ListFiles lists files matching options.
func (c *Client) ListFiles(ctx context.Context, options ListOptions) ([]*FileInfo, error) {
	call := c.service.Files.List().Context(ctx).Fields(listFields)
	if q := BuildQuery(options.Query, options.FolderID); q != "" {
		call = call.Q(q)
	}
	if options.MaxResults > 0 {
		call = call.PageSize(options.MaxResults)
	}

	list, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]*FileInfo, len(list.Files))
	for i, f := range list.Files {
		files[i] = convertToFileInfo(f)
	}
	return files, nil
}

// CreateFolder creates a folder, optionally inside parentID.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	file := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
	}
	if parentID != "" {
		file.Parents = []string{parentID}
	}

	created, err := c.service.Files.Create(file).Context(ctx).Fields(fileFields).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return convertToFileInfo(created), nil
}

// UploadFile creates a file whose body is options.Content.
func (c *Client) UploadFile(ctx context.Context, options UploadOptions) (*FileInfo, error) {
	if options.Name == "" {
		return nil, fmt.Errorf("file name is required")
	}

	file := &drive.File{
		Name:     options.Name,
		MimeType: options.MimeType,
	}
	if options.ParentID != "" {
		file.Parents = []string{options.ParentID}
	}

	created, err := c.service.Files.Create(file).
		Context(ctx).
		Media(strings.NewReader(options.Content), googleapi.ContentType(options.MimeType)).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	return convertToFileInfo(created), nil
}

func convertToFileInfo(f *drive.File) *FileInfo {
	return &FileInfo{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
		WebViewLink:  f.WebViewLink,
		Parents:      f.Parents,
	}
}
