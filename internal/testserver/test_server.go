// Package testserver wires the full intentcat stack over an in-memory
// database and exposes it to tests through a real MCP client session.
package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/domain/recognition"
	"github.com/rpggio/intentcat/internal/mcp"
	"github.com/rpggio/intentcat/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// DefaultTenant is the tenant injected when auth is disabled.
const DefaultTenant = "default"

type TestServer struct {
	DB      *sqlite.DB
	Intents *sqlite.IntentRepository
	APIKeys *sqlite.APIKeyRepository
	Server  *sdkmcp.Server
	Session *sdkmcp.ClientSession
}

func newStack(t *testing.T, authEnabled bool, mode string) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	intentRepo := sqlite.NewIntentRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	apiKeys := sqlite.NewAPIKeyRepository(db)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Recognition: recognition.NewService(intentRepo, recognition.Config{}, nil),
			Intents:     intent.NewService(intentRepo, categoryRepo, activityRepo, nil),
			Categories:  category.NewService(categoryRepo, activityRepo, nil),
			Activity:    activity.NewService(activityRepo, nil),
		},
		Resolver:      apiKeys,
		AuthEnabled:   authEnabled,
		TransportMode: mode,
		DefaultTenant: DefaultTenant,
		Version:       "test",
	})

	return &TestServer{DB: db, Intents: intentRepo, APIKeys: apiKeys, Server: server}
}

// New connects a client to the server over in-memory transports, the way
// a stdio client would.
func New(t *testing.T) *TestServer {
	t.Helper()
	ts := newStack(t, false, "stdio")

	ctx := context.Background()
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := ts.Server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	ts.Session = connectClient(t, clientTransport)
	t.Cleanup(func() { _ = serverSession.Close() })
	return ts
}

// NewHTTP serves the stack over streamable HTTP with bearer auth enabled
// and registers token for tenantID. The returned session carries token.
func NewHTTP(t *testing.T, token, tenantID string) (*TestServer, *httptest.Server) {
	t.Helper()
	ts := newStack(t, true, "http")
	require.NoError(t, ts.APIKeys.Add(context.Background(), token, tenantID, "test"))

	httpServer := httptest.NewServer(mcp.NewHTTPHandler(ts.Server))
	t.Cleanup(httpServer.Close)

	ts.Session = connectClient(t, HTTPTransport(httpServer.URL, token))
	return ts, httpServer
}

// HTTPTransport returns a client transport for an intentcat HTTP endpoint
// that sends token as a bearer credential. An empty token sends none.
func HTTPTransport(baseURL, token string) sdkmcp.Transport {
	return &sdkmcp.StreamableClientTransport{
		Endpoint:   baseURL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: token}},
	}
}

type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	return http.DefaultTransport.RoundTrip(req)
}

func connectClient(t *testing.T, transport sdkmcp.Transport) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "intentcat-test", Version: "1.0.0"}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	session, err := client.Connect(ctx, transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// CallTool calls a tool that must succeed and decodes its JSON text into out.
func (ts *TestServer) CallTool(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	result := ts.call(t, name, args)
	require.False(t, result.IsError, "tool %s returned error: %s", name, textOf(t, result))
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), out))
	}
}

// CallToolError calls a tool that must fail and returns the decoded error.
func (ts *TestServer) CallToolError(t *testing.T, name string, args map[string]any) mcp.APIError {
	t.Helper()
	result := ts.call(t, name, args)
	require.True(t, result.IsError, "tool %s unexpectedly succeeded", name)

	var apiErr mcp.APIError
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &apiErr))
	return apiErr
}

func (ts *TestServer) call(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := ts.Session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	return result
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatalf("tool result has no text content")
	return ""
}
