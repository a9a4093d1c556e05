package operation

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/teemow/workspace-mcp/internal/google"
)

// ResourceHandler renders the resource addressed by uri. params holds the
// values extracted from the URI template placeholders.
type ResourceHandler func(ctx context.Context, uri string, params map[string]string) (string, error)

// ResourceDescriptor declares one read-only resource.
type ResourceDescriptor struct {
	Name        string
	URITemplate string
	Description string
	// MIMEType defaults to text/plain.
	MIMEType    string
	ErrorPrefix string
	Handler     ResourceHandler
}

// ContentType returns the MIME type of the rendered content.
func (d ResourceDescriptor) ContentType() string {
	if d.MIMEType == "" {
		return "text/plain"
	}
	return d.MIMEType
}

// Check reports structural problems with the descriptor itself.
func (d ResourceDescriptor) Check() error {
	if d.Name == "" {
		return fmt.Errorf("resource name is empty")
	}
	if d.URITemplate == "" {
		return fmt.Errorf("resource %s has no URI template", d.Name)
	}
	if d.Handler == nil {
		return fmt.Errorf("resource %s has no handler", d.Name)
	}
	return nil
}

// Render resolves the resource. Failures are rendered as explanatory text
// and returned as cause for logging; the text is always usable.
func Render(ctx context.Context, d ResourceDescriptor, uri string, params map[string]string) (text string, cause error) {
	defer func() {
		if r := recover(); r != nil {
			cause = &PanicError{Value: r, Stack: debug.Stack()}
			text = d.failureText(cause)
		}
	}()

	text, err := d.Handler(ctx, uri, params)
	if err != nil {
		return d.failureText(err), err
	}
	return text, nil
}

func (d ResourceDescriptor) failureText(err error) string {
	prefix := d.ErrorPrefix
	if prefix == "" {
		prefix = "Error reading " + d.Name
	}
	return prefix + ": " + google.BackendMessage(err)
}
