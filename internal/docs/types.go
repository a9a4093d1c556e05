package docs

import "fmt"

// Document is a Google Doc with its body as plain text.
type Document struct {
	ID         string
	Title      string
	RevisionID string
	Text       string
}

// URL returns the editor URL of the document.
func (d *Document) URL() string {
	return EditURL(d.ID)
}

// EditURL returns the editor URL for a document ID.
func EditURL(documentID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", documentID)
}
