// Package drive provides a client for the Google Drive v3 API.
//
// It covers the file operations the server exposes: listing files,
// optionally restricted to a folder, creating folders and uploading text
// content as a new file.
//
// Example usage:
//
//	client, err := drive.NewClient(ctx, opts...)
//	if err != nil {
//	    return err
//	}
//
//	files, err := client.ListFiles(ctx, drive.ListOptions{
//	    Query:      "mimeType='application/pdf'",
//	    MaxResults: 10,
//	})
package drive
