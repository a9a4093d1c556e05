package gmail

// ListOptions filters a message listing.
type ListOptions struct {
	MaxResults int64
	Query      string
	LabelIDs   []string
}

// MessageSummary is the metadata shown in message listings.
type MessageSummary struct {
	ID      string
	Subject string
	From    string
	Date    string
	Snippet string
}

// Message is a single message with its decoded body.
type Message struct {
	ID       string
	ThreadID string
	Subject  string
	From     string
	To       string
	Date     string
	Snippet  string
	Body     string
	LabelIDs []string
}

// Thread is a conversation and its messages in order.
type Thread struct {
	ID       string
	Messages []Message
}

// Label is a Gmail label.
type Label struct {
	ID             string
	Name           string
	Type           string
	MessagesTotal  int64
	MessagesUnread int64
}

// OutgoingMessage is a plain-text message to send.
type OutgoingMessage struct {
	To      string
	Cc      string
	Bcc     string
	Subject string
	Body    string
}

// Formats accepted by GetMessage.
const (
	FormatFull     = "full"
	FormatMetadata = "metadata"
	FormatMinimal  = "minimal"
)
