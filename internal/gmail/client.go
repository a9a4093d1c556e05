package gmail

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const me = "me"

// Client wraps the Gmail Users service of the authenticated user.
type Client struct {
	svc *gmail.UsersService
}

// NewClient creates a Gmail client from the given options.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Client{svc: svc.Users}, nil
}

// ListMessages lists messages matching opts and fetches their metadata.
// Detail fetches run concurrently; the result keeps the listing order.
func (c *Client) ListMessages(ctx context.Context, opts ListOptions) ([]MessageSummary, error) {
	call := c.svc.Messages.List(me).Context(ctx)
	if opts.MaxResults > 0 {
		call = call.MaxResults(opts.MaxResults)
	}
	if opts.Query != "" {
		call = call.Q(opts.Query)
	}
	if len(opts.LabelIDs) > 0 {
		call = call.LabelIds(opts.LabelIDs...)
	}

	list, err := call.Do()
	if err != nil {
		return nil, err
	}
	if len(list.Messages) == 0 {
		return nil, nil
	}

	summaries := make([]MessageSummary, len(list.Messages))
	g, gctx := errgroup.WithContext(ctx)
	for i, stub := range list.Messages {
		g.Go(func() error {
			msg, err := c.svc.Messages.Get(me, stub.Id).
				Format(FormatMetadata).
				MetadataHeaders("Subject", "From", "Date").
				Context(gctx).
				Do()
			if err != nil {
				return err
			}
			summaries[i] = MessageSummary{
				ID:      msg.Id,
				Subject: header(msg.Payload, "Subject"),
				From:    header(msg.Payload, "From"),
				Date:    header(msg.Payload, "Date"),
				Snippet: msg.Snippet,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetMessage fetches one message in the given format.
func (c *Client) GetMessage(ctx context.Context, id, format string) (*Message, error) {
	if format == "" {
		format = FormatFull
	}
	msg, err := c.svc.Messages.Get(me, id).Format(format).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return convertMessage(msg), nil
}

// GetThread fetches a thread with all of its messages.
func (c *Client) GetThread(ctx context.Context, id string) (*Thread, error) {
	t, err := c.svc.Threads.Get(me, id).Format(FormatFull).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	thread := &Thread{ID: t.Id}
	for _, msg := range t.Messages {
		thread.Messages = append(thread.Messages, *convertMessage(msg))
	}
	return thread, nil
}

// SendMessage sends a plain-text message and returns its ID.
func (c *Client) SendMessage(ctx context.Context, msg *OutgoingMessage) (string, error) {
	raw, err := buildRaw(msg)
	if err != nil {
		return "", err
	}
	sent, err := c.svc.Messages.Send(me, &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}

// ListLabels returns all labels of the mailbox.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	resp, err := c.svc.Labels.List(me).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	labels := make([]Label, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		labels = append(labels, Label{
			ID:             l.Id,
			Name:           l.Name,
			Type:           l.Type,
			MessagesTotal:  l.MessagesTotal,
			MessagesUnread: l.MessagesUnread,
		})
	}
	return labels, nil
}

// ModifyMessage adds and removes labels on a message.
func (c *Client) ModifyMessage(ctx context.Context, id string, add, remove []string) (*Message, error) {
	msg, err := c.svc.Messages.Modify(me, id, &gmail.ModifyMessageRequest{
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return convertMessage(msg), nil
}

func convertMessage(msg *gmail.Message) *Message {
	return &Message{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Subject:  header(msg.Payload, "Subject"),
		From:     header(msg.Payload, "From"),
		To:       header(msg.Payload, "To"),
		Date:     header(msg.Payload, "Date"),
		Snippet:  msg.Snippet,
		Body:     extractBody(msg.Payload),
		LabelIDs: msg.LabelIds,
	}
}
