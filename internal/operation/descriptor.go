package operation

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/workspace-mcp/internal/google"
)

// Handler performs one backend action and renders its outcome as text.
// Any returned error becomes a failure envelope.
type Handler func(ctx context.Context, args Args) (string, error)

// Descriptor declares one operation.
type Descriptor struct {
	Name        string
	Description string
	// Service and Kind label metrics, e.g. "gmail" and "list".
	Service string
	Kind    string
	// ErrorPrefix precedes the backend message in failure envelopes,
	// e.g. "Error listing messages".
	ErrorPrefix string
	ReadOnly    bool
	Schema      Schema
	Handler     Handler
}

// Check reports structural problems with the descriptor itself.
func (d Descriptor) Check() error {
	if d.Name == "" {
		return fmt.Errorf("operation name is empty")
	}
	if d.Handler == nil {
		return fmt.Errorf("operation %s has no handler", d.Name)
	}
	seen := make(map[string]bool, len(d.Schema))
	for _, f := range d.Schema {
		if f.Name == "" {
			return fmt.Errorf("operation %s has a field without a name", d.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("operation %s declares field %s twice", d.Name, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Tool builds the mcp-go tool definition.
func (d Descriptor) Tool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	if d.ReadOnly {
		opts = append(opts, mcp.WithReadOnlyHintAnnotation(true))
	}
	opts = append(opts, d.Schema.ToolOptions()...)
	return mcp.NewTool(d.Name, opts...)
}

// PanicError records a panic recovered from a handler.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("internal error: %v", e.Value)
}

// Run validates raw, invokes the handler and shapes the outcome into an
// envelope. It never panics and never returns a raw backend error.
func Run(ctx context.Context, d Descriptor, raw map[string]any) Envelope {
	env, _ := Execute(ctx, d, raw)
	return env
}

// Execute is Run that also returns the cause of a failure envelope, for
// logging. The envelope is always usable on its own.
func Execute(ctx context.Context, d Descriptor, raw map[string]any) (env Envelope, cause error) {
	defer func() {
		if r := recover(); r != nil {
			cause = &PanicError{Value: r, Stack: debug.Stack()}
			env = Failure(d.failureText(cause))
		}
	}()

	args, err := Validate(d.Schema, raw)
	if err != nil {
		return Failure(err.Error()), err
	}

	text, err := d.Handler(ctx, args)
	if err != nil {
		return Failure(d.failureText(err)), err
	}
	return Success(text), nil
}

func (d Descriptor) failureText(err error) string {
	prefix := d.ErrorPrefix
	if prefix == "" {
		prefix = "Error running " + d.Name
	}
	return prefix + ": " + google.BackendMessage(err)
}
