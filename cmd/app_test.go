package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/workspace-mcp/internal/google"
	"github.com/teemow/workspace-mcp/internal/googletest"
	"github.com/teemow/workspace-mcp/internal/registry"
	"github.com/teemow/workspace-mcp/internal/server"
)

func testCredential() google.Credential {
	return google.Credential{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURI:  "http://localhost:8080/oauth2callback",
		AccessToken:  "test-access",
	}
}

func newTestApp(t *testing.T, handler http.Handler) *app {
	t.Helper()
	a, err := newApp(context.Background(), testCredential(), appOptions{
		logger:  quietLogger(&bytes.Buffer{}),
		apiOpts: []server.ContextOption{server.WithAPIOptions(googletest.Server(t, handler)...)},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewApp_RegistersEverything(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())

	var names []string
	for _, d := range a.registry.Operations() {
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{
		"generate_auth_url", "exchange_code_for_tokens",
		"gmail_list_messages", "gmail_get_message", "gmail_send_message", "gmail_modify_message", "gmail_list_labels",
		"drive_list_files", "drive_create_folder", "drive_upload_file",
		"calendar_list_events", "calendar_create_event",
		"docs_get_document", "docs_create_document", "docs_append_text",
		"sheets_get_values", "sheets_update_values", "sheets_create_spreadsheet",
		"slides_create_presentation", "slides_get_presentation", "slides_create_slide",
	}, names)

	var uris []string
	for _, r := range a.registry.Resources() {
		uris = append(uris, r.URITemplate)
	}
	assert.ElementsMatch(t, []string{
		"gmail://message/{messageId}",
		"gmail://thread/{threadId}",
		"gmail://labels",
		"workspace://docs/{service}",
		"workspace://auth/guide",
	}, uris)
}

func TestNewApp_WithMCPServer(t *testing.T) {
	srv := newMCPServer()
	a, err := newApp(context.Background(), testCredential(), appOptions{
		logger:    quietLogger(&bytes.Buffer{}),
		mcpServer: srv,
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, srv.ListTools(), len(a.registry.Operations()))
}

func TestRunCall(t *testing.T) {
	a := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gmail/v1/users/me/labels", r.URL.Path)
		googletest.WriteJSON(w, map[string]any{"labels": []map[string]any{
			{"id": "INBOX", "name": "INBOX", "type": "system"},
		}})
	}))

	var out bytes.Buffer
	require.NoError(t, runCall(context.Background(), &out, a.registry, "gmail_list_labels", ""))
	assert.Contains(t, out.String(), "Gmail Labels:\n\nID: INBOX\nName: INBOX\nType: system\n")
}

func TestRunCall_Failure(t *testing.T) {
	a := newTestApp(t, googletest.Failing(http.StatusForbidden, "Insufficient Permission"))

	var out bytes.Buffer
	err := runCall(context.Background(), &out, a.registry, "gmail_list_labels", "{}")
	assert.ErrorIs(t, err, errOperationFailed)
	assert.Contains(t, out.String(), "Insufficient Permission")
}

func TestRunCall_Arguments(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())

	var out bytes.Buffer
	err := runCall(context.Background(), &out, a.registry, "gmail_list_messages", "{not json")
	assert.ErrorContains(t, err, "invalid --args")

	out.Reset()
	err = runCall(context.Background(), &out, a.registry, "gmail_get_message", "{}")
	assert.ErrorIs(t, err, errOperationFailed)
	assert.Contains(t, out.String(), "messageId")

	err = runCall(context.Background(), &out, a.registry, "no_such_operation", "")
	assert.ErrorIs(t, err, registry.ErrUnknownOperation)
}

func TestRunCall_Resource(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())

	var out bytes.Buffer
	require.NoError(t, runCall(context.Background(), &out, a.registry, "workspace://docs/nope", ""))
	assert.Contains(t, out.String(), "Documentation not found for service: nope")

	err := runCall(context.Background(), &out, a.registry, "unknown://thing", "")
	assert.ErrorIs(t, err, registry.ErrUnknownResource)
}

func TestRunAuthURL(t *testing.T) {
	var out bytes.Buffer
	p := google.NewProvider(testCredential())
	require.NoError(t, runAuthURL(&out, p, []string{"sheets"}))

	u, err := url.Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "offline", u.Query().Get("access_type"))
	assert.Equal(t, "https://www.googleapis.com/auth/spreadsheets", u.Query().Get("scope"))

	assert.Error(t, runAuthURL(&out, p, []string{"photos"}))
}

func TestRunAuthExchange(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-1","refresh_token":"refresh-1","token_type":"Bearer","expires_in":3600}`))
	}))
	defer tokenSrv.Close()

	p := google.NewProvider(testCredential(), google.WithEndpoint(oauth2.Endpoint{
		AuthURL:   tokenSrv.URL + "/auth",
		TokenURL:  tokenSrv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}))

	var out bytes.Buffer
	require.NoError(t, runAuthExchange(context.Background(), &out, p, "good-code"))
	assert.Contains(t, out.String(), "REFRESH_TOKEN=refresh-1")
}

func TestAuthCmd_HelpRequiresExchange(t *testing.T) {
	cmd := newAuthCmd()
	assert.Contains(t, cmd.Long, `must be completed with "auth exchange"`)
	assert.Contains(t, cmd.Long, "generate_auth_url")

	urlCmd, _, err := cmd.Find([]string{"url"})
	require.NoError(t, err)
	assert.Contains(t, urlCmd.Long, `"auth exchange <code>"`)
	assert.Contains(t, urlCmd.Long, "/oauth2callback rejects")
}

func TestGenerateToolsMarkdown(t *testing.T) {
	a := newTestApp(t, http.NotFoundHandler())

	md := generateToolsMarkdown(a.registry.Operations(), a.registry.Resources())

	assert.True(t, strings.HasPrefix(md, "# MCP Tools Reference\n\n"))
	assert.Contains(t, md, "- [Gmail Tools](#gmail-tools)\n")
	assert.Contains(t, md, "## Authentication Tools\n\n### exchange_code_for_tokens\n")
	assert.Contains(t, md, "- `services` (array, required): ")
	assert.Contains(t, md, "### workspace_api_docs\n\n`workspace://docs/{service}` (text/markdown)\n")
	assert.NotContains(t, md, "## Other")
}
