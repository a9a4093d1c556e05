package gmail

import (
	"fmt"
	"strings"
)

const (
	noSubject     = "(No Subject)"
	unknownHeader = "Unknown"
)

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// FormatSummaries renders a message listing.
func FormatSummaries(summaries []MessageSummary) string {
	if len(summaries) == 0 {
		return "No messages found matching the criteria."
	}
	blocks := make([]string, len(summaries))
	for i, m := range summaries {
		blocks[i] = fmt.Sprintf("ID: %s\nSubject: %s\nFrom: %s\nDate: %s\nSnippet: %s\n",
			m.ID,
			orDefault(m.Subject, noSubject),
			orDefault(m.From, unknownHeader),
			m.Date,
			m.Snippet)
	}
	return fmt.Sprintf("Found %d messages:\n\n%s", len(summaries), strings.Join(blocks, "\n"))
}

// FormatMessage renders the headers and body of one message.
func FormatMessage(m *Message) string {
	return fmt.Sprintf("Message ID: %s\nThread ID: %s\nSubject: %s\nFrom: %s\nTo: %s\nDate: %s\n\nBody:\n%s",
		m.ID,
		m.ThreadID,
		orDefault(m.Subject, noSubject),
		orDefault(m.From, unknownHeader),
		orDefault(m.To, unknownHeader),
		m.Date,
		m.Body)
}

// FormatThread renders every message of a thread in order.
func FormatThread(t *Thread) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thread ID: %s\nMessages: %d\n\n", t.ID, len(t.Messages))
	for i, m := range t.Messages {
		fmt.Fprintf(&b, "--- Message %d ---\n", i+1)
		fmt.Fprintf(&b, "Message ID: %s\n", m.ID)
		fmt.Fprintf(&b, "Subject: %s\n", orDefault(m.Subject, noSubject))
		fmt.Fprintf(&b, "From: %s\n", orDefault(m.From, unknownHeader))
		fmt.Fprintf(&b, "Date: %s\n\n", m.Date)
		fmt.Fprintf(&b, "%s\n\n", m.Body)
	}
	return b.String()
}

// FormatLabels renders a label list. withCounts adds the message counters.
func FormatLabels(labels []Label, withCounts bool) string {
	var b strings.Builder
	b.WriteString("Gmail Labels:\n\n")
	blocks := make([]string, len(labels))
	for i, l := range labels {
		block := fmt.Sprintf("ID: %s\nName: %s\nType: %s\n", l.ID, l.Name, l.Type)
		if withCounts {
			block += fmt.Sprintf("Messages: %d\nUnread: %d\n", l.MessagesTotal, l.MessagesUnread)
		}
		blocks[i] = block
	}
	b.WriteString(strings.Join(blocks, "\n"))
	return b.String()
}

// FormatModified renders the outcome of a label change.
func FormatModified(m *Message) string {
	return fmt.Sprintf("Message modified successfully!\nMessage ID: %s\nThread ID: %s\nLabels: %s",
		m.ID, m.ThreadID, strings.Join(m.LabelIDs, ", "))
}
