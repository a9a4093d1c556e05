package operation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func echoDescriptor(handler Handler) Descriptor {
	return Descriptor{
		Name:        "test_echo",
		Description: "Echo a message",
		ErrorPrefix: "Error echoing",
		Schema: Schema{
			{Name: "message", Type: TypeString, Required: true, Description: "Message to echo"},
			{Name: "times", Type: TypeInteger, Default: 1},
		},
		Handler: handler,
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		handler   Handler
		raw       map[string]any
		wantError bool
		wantText  string
	}{
		{
			name: "success",
			handler: func(ctx context.Context, args Args) (string, error) {
				return fmt.Sprintf("%s x%d", args.String("message"), args.Int("times")), nil
			},
			raw:      map[string]any{"message": "hi"},
			wantText: "hi x1",
		},
		{
			name: "backend error message is surfaced",
			handler: func(ctx context.Context, args Args) (string, error) {
				return "", fmt.Errorf("calling api: %w", &googleapi.Error{Code: 403, Message: "Insufficient Permission"})
			},
			raw:       map[string]any{"message": "hi"},
			wantError: true,
			wantText:  "Error echoing: Insufficient Permission",
		},
		{
			name: "plain error",
			handler: func(ctx context.Context, args Args) (string, error) {
				return "", errors.New("connection refused")
			},
			raw:       map[string]any{"message": "hi"},
			wantError: true,
			wantText:  "Error echoing: connection refused",
		},
		{
			name: "panic is recovered",
			handler: func(ctx context.Context, args Args) (string, error) {
				var m map[string]int
				m["boom"]++
				return "", nil
			},
			raw:       map[string]any{"message": "hi"},
			wantError: true,
			wantText:  "Error echoing: internal error: assignment to entry in nil map",
		},
		{
			name: "validation failure never reaches the handler",
			handler: func(ctx context.Context, args Args) (string, error) {
				t.Fatal("handler must not be called")
				return "", nil
			},
			raw:       map[string]any{},
			wantError: true,
			wantText:  "invalid arguments: message: is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Run(context.Background(), echoDescriptor(tt.handler), tt.raw)

			assert.Equal(t, tt.wantError, env.IsError)
			require.Len(t, env.Content, 1)
			assert.Equal(t, ContentTypeText, env.Content[0].Type)
			assert.Equal(t, tt.wantText, env.Text())
		})
	}
}

func TestExecuteReturnsCause(t *testing.T) {
	d := echoDescriptor(func(ctx context.Context, args Args) (string, error) {
		panic("kaboom")
	})

	env, cause := Execute(context.Background(), d, map[string]any{"message": "x"})
	assert.True(t, env.IsError)

	var perr *PanicError
	require.True(t, errors.As(cause, &perr))
	assert.Equal(t, "kaboom", perr.Value)
	assert.NotEmpty(t, perr.Stack)
}

func TestDescriptorCheck(t *testing.T) {
	ok := echoDescriptor(func(context.Context, Args) (string, error) { return "", nil })
	assert.NoError(t, ok.Check())

	noName := ok
	noName.Name = ""
	assert.Error(t, noName.Check())

	noHandler := ok
	noHandler.Handler = nil
	assert.Error(t, noHandler.Check())

	dupField := ok
	dupField.Schema = Schema{{Name: "a", Type: TypeString}, {Name: "a", Type: TypeInteger}}
	assert.Error(t, dupField.Check())
}

func TestDescriptorTool(t *testing.T) {
	d := Descriptor{
		Name:        "gmail_get_message",
		Description: "Get a message",
		ReadOnly:    true,
		Schema: Schema{
			{Name: "messageId", Type: TypeString, Required: true, Description: "Message ID"},
			{Name: "format", Type: TypeString, Default: "full", Enum: []string{"full", "metadata", "minimal"}},
			{Name: "maxResults", Type: TypeInteger, Default: 10},
			{Name: "labelIds", Type: TypeStringArray},
			{Name: "values", Type: TypeStringMatrix},
		},
		Handler: func(context.Context, Args) (string, error) { return "", nil },
	}

	tool := d.Tool()
	assert.Equal(t, "gmail_get_message", tool.Name)
	assert.Equal(t, "Get a message", tool.Description)
	assert.Equal(t, []string{"messageId"}, tool.InputSchema.Required)
	require.NotNil(t, tool.Annotations.ReadOnlyHint)
	assert.True(t, *tool.Annotations.ReadOnlyHint)

	format, ok := tool.InputSchema.Properties["format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", format["type"])
	assert.Equal(t, "full", format["default"])
	assert.Equal(t, []string{"full", "metadata", "minimal"}, format["enum"])

	maxResults := tool.InputSchema.Properties["maxResults"].(map[string]any)
	assert.Equal(t, "number", maxResults["type"])
	assert.Equal(t, float64(10), maxResults["default"])

	labelIDs := tool.InputSchema.Properties["labelIds"].(map[string]any)
	assert.Equal(t, "array", labelIDs["type"])
	assert.Equal(t, map[string]any{"type": "string"}, labelIDs["items"])
}

func TestEnvelope(t *testing.T) {
	ok := Success("done")
	assert.False(t, ok.IsError)
	res := ok.CallToolResult()
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, isText := res.Content[0].(mcp.TextContent)
	require.True(t, isText)
	assert.Equal(t, "done", text.Text)

	failed := Failure("")
	assert.True(t, failed.IsError)
	assert.Equal(t, "unknown error", failed.Text())
	assert.True(t, failed.CallToolResult().IsError)
}
