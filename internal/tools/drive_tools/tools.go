package drive_tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/teemow/workspace-mcp/internal/drive"
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

const service = "drive"

// Operations returns all Google Drive operations.
func Operations(sc *server.ServerContext) []operation.Descriptor {
	return []operation.Descriptor{
		{
			Name:        "drive_list_files",
			Description: "List files in Google Drive",
			Service:     service,
			Kind:        "list",
			ErrorPrefix: "Error listing files",
			ReadOnly:    true,
			Schema: operation.Schema{
				{Name: "maxResults", Type: operation.TypeInteger, Default: 10, Description: "Maximum number of files to return"},
				{Name: "query", Type: operation.TypeString, Description: "Search query for files"},
				{Name: "folderId", Type: operation.TypeString, Description: "ID of folder to list files from"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.DriveClient()
				if err != nil {
					return "", err
				}
				files, err := client.ListFiles(ctx, drive.ListOptions{
					Query:      args.String("query"),
					FolderID:   args.String("folderId"),
					MaxResults: args.Int("maxResults"),
				})
				if err != nil {
					return "", err
				}
				return formatFiles(files), nil
			},
		},
		{
			Name:        "drive_create_folder",
			Description: "Create a new folder in Google Drive",
			Service:     service,
			Kind:        "create",
			ErrorPrefix: "Error creating folder",
			Schema: operation.Schema{
				{Name: "name", Type: operation.TypeString, Required: true, Description: "Name of the folder to create"},
				{Name: "parentId", Type: operation.TypeString, Description: "ID of the parent folder"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.DriveClient()
				if err != nil {
					return "", err
				}
				folder, err := client.CreateFolder(ctx, args.String("name"), args.String("parentId"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Folder created successfully!\n\nID: %s\nName: %s\nLink: %s",
					folder.ID, folder.Name, folder.WebViewLink), nil
			},
		},
		{
			Name:        "drive_upload_file",
			Description: "Upload a file with text content to Google Drive",
			Service:     service,
			Kind:        "create",
			ErrorPrefix: "Error uploading file",
			Schema: operation.Schema{
				{Name: "name", Type: operation.TypeString, Required: true, Description: "Name for the file"},
				{Name: "mimeType", Type: operation.TypeString, Required: true, Description: "MIME type of the file"},
				{Name: "content", Type: operation.TypeString, Required: true, Description: "Text content of the file"},
				{Name: "parentId", Type: operation.TypeString, Description: "ID of the parent folder"},
			},
			Handler: func(ctx context.Context, args operation.Args) (string, error) {
				client, err := sc.DriveClient()
				if err != nil {
					return "", err
				}
				file, err := client.UploadFile(ctx, drive.UploadOptions{
					Name:     args.String("name"),
					MimeType: args.String("mimeType"),
					ParentID: args.String("parentId"),
					Content:  args.String("content"),
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("File uploaded successfully!\n\nID: %s\nName: %s\nType: %s\nLink: %s",
					file.ID, file.Name, file.MimeType, file.WebViewLink), nil
			},
		},
	}
}

func formatFiles(files []*drive.FileInfo) string {
	if len(files) == 0 {
		return "No files found matching the criteria."
	}
	blocks := make([]string, len(files))
	for i, f := range files {
		size := "N/A"
		if f.Size > 0 {
			size = strconv.FormatInt(f.Size, 10)
		}
		link := f.WebViewLink
		if link == "" {
			link = "N/A"
		}
		blocks[i] = fmt.Sprintf("ID: %s\nName: %s\nType: %s\nCreated: %s\nModified: %s\nSize: %s\nLink: %s\n",
			f.ID, f.Name, f.MimeType, f.CreatedTime, f.ModifiedTime, size, link)
	}
	return fmt.Sprintf("Found %d files:\n\n%s", len(files), strings.Join(blocks, "\n"))
}
