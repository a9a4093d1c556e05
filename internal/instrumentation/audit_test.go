package instrumentation

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvocation(t *testing.T) {
	inv := NewInvocation("gmail_send_message").
		WithService("gmail", "send").
		WithArgs(map[string]any{"to": "a@example.com", "body": "secret body", "subject": "hi"}).
		WithSpanContext(context.Background())

	require.NotEmpty(t, inv.ID)
	assert.Equal(t, []string{"body", "subject", "to"}, inv.ArgNames)
	assert.Empty(t, inv.TraceID)

	inv.Complete(false, "Error sending email: quota exceeded")
	assert.Equal(t, StatusError, inv.Status())
	assert.Equal(t, "Error sending email: quota exceeded", inv.Error)

	ok := NewInvocation("gmail_list_labels").Complete(true, "ignored")
	assert.Equal(t, StatusSuccess, ok.Status())
	assert.Empty(t, ok.Error)
}

func TestAuditLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	al := NewAuditLogger(logger, true)

	inv := NewInvocation("gmail_send_message").
		WithService("gmail", "send").
		WithArgs(map[string]any{"to": "a@example.com", "body": "secret body"})
	al.LogInvocation(context.Background(), inv.Complete(true, ""))

	out := buf.String()
	assert.NotContains(t, out, "secret body", "argument values must not be logged")

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &record))
	assert.Equal(t, "operation_executed", record["msg"])
	assert.Equal(t, "audit", record["log_type"])
	assert.Equal(t, "gmail_send_message", record["operation"])
	assert.Equal(t, "send", record["kind"])
	assert.Equal(t, true, record["success"])

	buf.Reset()
	al.LogInvocation(context.Background(), NewInvocation("x").Complete(false, "boom"))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "operation_failed", record["msg"])
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "boom", record["error"])
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(slog.New(slog.NewTextHandler(&buf, nil)), false)
	al.LogInvocation(context.Background(), NewInvocation("x").Complete(true, ""))
	assert.Empty(t, buf.String())

	var nilLogger *AuditLogger
	nilLogger.LogInvocation(context.Background(), NewInvocation("x"))
}
