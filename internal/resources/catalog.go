package resources

import (
	"fmt"
	"strings"

	"github.com/teemow/workspace-mcp/internal/operation"
)

type endpoint struct {
	Name        string
	Description string
}

type serviceDoc struct {
	Service     string
	Title       string
	Description string
	URL         string
	Endpoints   []endpoint
}

// catalog lists the documented services in display order.
var catalog = []serviceDoc{
	{
		Service:     "gmail",
		Title:       "Gmail API Documentation",
		Description: "The Gmail API lets you view and manage Gmail mailbox data like threads, messages, and labels.",
		URL:         "https://developers.google.com/gmail/api/guides",
		Endpoints: []endpoint{
			{"users.messages.list", "Lists the messages in the user's mailbox."},
			{"users.messages.get", "Gets the specified message."},
			{"users.messages.send", "Sends the specified message to recipients."},
			{"users.messages.modify", "Modifies the labels on the specified message."},
			{"users.labels.list", "Lists all labels in the user's mailbox."},
			{"users.threads.get", "Gets the specified thread."},
		},
	},
	{
		Service:     "drive",
		Title:       "Google Drive API Documentation",
		Description: "The Drive API allows you to create, share, and manage files stored in Google Drive.",
		URL:         "https://developers.google.com/drive/api/guides/about-sdk",
		Endpoints: []endpoint{
			{"files.list", "Lists or searches files."},
			{"files.get", "Gets a file's metadata or content by ID."},
			{"files.create", "Creates a new file."},
			{"files.update", "Updates a file's metadata and/or content."},
			{"files.delete", "Permanently deletes a file."},
		},
	},
	{
		Service:     "docs",
		Title:       "Google Docs API Documentation",
		Description: "The Docs API allows you to create, read, and edit Google Docs.",
		URL:         "https://developers.google.com/docs/api/guides/concepts",
		Endpoints: []endpoint{
			{"documents.get", "Gets the latest version of the specified document."},
			{"documents.create", "Creates a new document."},
			{"documents.batchUpdate", "Applies one or more updates to the document."},
		},
	},
	{
		Service:     "sheets",
		Title:       "Google Sheets API Documentation",
		Description: "The Sheets API allows you to read, write, and format data in Sheets.",
		URL:         "https://developers.google.com/sheets/api/guides/concepts",
		Endpoints: []endpoint{
			{"spreadsheets.get", "Returns the spreadsheet at the given ID."},
			{"spreadsheets.create", "Creates a spreadsheet."},
			{"spreadsheets.values.get", "Returns a range of values from a spreadsheet."},
			{"spreadsheets.values.update", "Sets values in a range of a spreadsheet."},
		},
	},
	{
		Service:     "slides",
		Title:       "Google Slides API Documentation",
		Description: "The Slides API allows you to create and edit Google Slides presentations.",
		URL:         "https://developers.google.com/slides/api/guides/concepts",
		Endpoints: []endpoint{
			{"presentations.get", "Gets the latest version of the specified presentation."},
			{"presentations.create", "Creates a new presentation."},
			{"presentations.batchUpdate", "Applies one or more updates to the presentation."},
		},
	},
	{
		Service:     "calendar",
		Title:       "Google Calendar API Documentation",
		Description: "The Calendar API allows you to display, create and modify calendar events.",
		URL:         "https://developers.google.com/calendar/api/guides/overview",
		Endpoints: []endpoint{
			{"events.list", "Returns events on the specified calendar."},
			{"events.get", "Returns an event."},
			{"events.insert", "Creates an event."},
			{"events.update", "Updates an event."},
			{"events.delete", "Deletes an event."},
		},
	},
}

// CatalogServices returns the documented service names in display order.
func CatalogServices() []string {
	names := make([]string, len(catalog))
	for i, doc := range catalog {
		names[i] = doc.Service
	}
	return names
}

func lookupService(name string) (serviceDoc, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, doc := range catalog {
		if doc.Service == key {
			return doc, true
		}
	}
	return serviceDoc{}, false
}

// renderServiceDoc renders the documentation page of one service. The
// tool list comes from the registered operations of that service.
func renderServiceDoc(requested string, ops []operation.Descriptor) string {
	doc, ok := lookupService(requested)
	if !ok {
		return fmt.Sprintf("Documentation not found for service: %s\n\nAvailable services: %s",
			requested, strings.Join(CatalogServices(), ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "%s\n\n", doc.Description)
	fmt.Fprintf(&b, "Official Documentation: %s\n\n", doc.URL)
	b.WriteString("## Key Endpoints\n\n")
	for _, e := range doc.Endpoints {
		fmt.Fprintf(&b, "- %s: %s\n", e.Name, e.Description)
	}
	fmt.Fprintf(&b, "\n## MCP Tools for %s\n\n", requested)
	for _, op := range ops {
		if op.Service == doc.Service {
			fmt.Fprintf(&b, "- %s: %s\n", op.Name, op.Description)
		}
	}
	return b.String()
}
