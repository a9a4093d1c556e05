package operation

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ContentTypeText is the only content type produced by operations.
const ContentTypeText = "text"

// Content is one rendered item of an envelope.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Envelope is the uniform result of every operation invocation.
// A failure carries exactly one text item describing the error.
type Envelope struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Success wraps rendered output.
func Success(text string) Envelope {
	return Envelope{Content: []Content{{Type: ContentTypeText, Text: text}}}
}

// Failure wraps an error message.
func Failure(message string) Envelope {
	if message == "" {
		message = "unknown error"
	}
	return Envelope{
		Content: []Content{{Type: ContentTypeText, Text: message}},
		IsError: true,
	}
}

// Text joins the text of all content items.
func (e Envelope) Text() string {
	parts := make([]string, 0, len(e.Content))
	for _, c := range e.Content {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n")
}

// CallToolResult converts the envelope to the mcp-go result type.
func (e Envelope) CallToolResult() *mcp.CallToolResult {
	if e.IsError {
		return mcp.NewToolResultError(e.Text())
	}
	result := &mcp.CallToolResult{}
	for _, c := range e.Content {
		result.Content = append(result.Content, mcp.NewTextContent(c.Text))
	}
	return result
}
