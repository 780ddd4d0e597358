package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotbridge/internal/spotify"
	"spotbridge/internal/transport/transportcore"
)

func newTestHandler(t *testing.T) Handler {
	t.Helper()
	handler, _, err := NewMCPServices(&Config{
		ServerName:    "spotbridge",
		ServerVersion: "test",
	})
	require.NoError(t, err)
	return handler
}

func TestHandleInitialize(t *testing.T) {
	h := newTestHandler(t)

	resp, err := h.HandleRequest(context.Background(), &Request{
		JSONRPC: JSONRPCVersion,
		ID:      1,
		Method:  "initialize",
		Params:  json.RawMessage(`{"protocolVersion":"2024-11-05","clientInfo":{"name":"test","version":"1"}}`),
	})
	require.NoError(t, err)
	require.False(t, resp.IsError())

	result, ok := resp.Result.(InitializeResult)
	require.True(t, ok)
	assert.Equal(t, ProtocolVersion, result.ProtocolVersion)
	assert.Equal(t, "spotbridge", result.ServerInfo.Name)
	assert.NotNil(t, result.Capabilities.Tools)
}

func TestHandleToolsList(t *testing.T) {
	h := newTestHandler(t)

	resp, err := h.HandleRequest(context.Background(), &Request{
		JSONRPC: JSONRPCVersion,
		ID:      2,
		Method:  "tools/list",
	})
	require.NoError(t, err)
	require.False(t, resp.IsError())

	result, ok := resp.Result.(ToolsListResult)
	require.True(t, ok)

	names := make(map[string]bool)
	for _, def := range result.Tools {
		names[def.Name] = true
	}
	assert.True(t, names["spotify_search"])
	assert.True(t, names["spotify_get"])
}

func TestHandleRequest_Invalid(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name     string
		req      *Request
		wantCode int
	}{
		{"nil request", nil, CodeInvalidRequest},
		{"wrong version", &Request{JSONRPC: "1.0", Method: "tools/list"}, CodeInvalidRequest},
		{"missing method", &Request{JSONRPC: JSONRPCVersion}, CodeInvalidRequest},
		{"unknown method", &Request{JSONRPC: JSONRPCVersion, Method: "prompts/list"}, CodeMethodNotFound},
		{"call without params", &Request{JSONRPC: JSONRPCVersion, Method: "tools/call"}, CodeInvalidParams},
		{
			"unknown tool",
			&Request{JSONRPC: JSONRPCVersion, Method: "tools/call", Params: json.RawMessage(`{"name":"nope"}`)},
			CodeToolNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.HandleRequest(context.Background(), tt.req)
			require.NoError(t, err)
			require.True(t, resp.IsError())
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestToolsCall_Unauthenticated(t *testing.T) {
	h := newTestHandler(t)

	resp, err := h.HandleRequest(context.Background(), &Request{
		JSONRPC: JSONRPCVersion,
		ID:      3,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"spotify_search","arguments":{"query":"daft punk"}}`),
	})
	require.NoError(t, err)
	require.False(t, resp.IsError())

	result, ok := resp.Result.(ToolsCallResult)
	require.True(t, ok)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "not authenticated")
}

func TestToolsCall_Search(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "daft punk", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer api.Close()

	h := newTestHandler(t)
	ctx := transportcore.ContextWithAPIClient(context.Background(),
		spotify.NewAPIClient(api.URL, "sp-access"))

	resp, err := h.HandleRequest(ctx, &Request{
		JSONRPC: JSONRPCVersion,
		ID:      4,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"spotify_search","arguments":{"query":"daft punk","kind":"track","limit":5}}`),
	})
	require.NoError(t, err)
	require.False(t, resp.IsError())

	result, ok := resp.Result.(ToolsCallResult)
	require.True(t, ok)
	require.False(t, result.IsError)
	assert.JSONEq(t, `{"tracks":{"items":[]}}`, result.Content[0].Text)
}

func TestToolsCall_Get(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tracks/abc123", r.URL.Path)
		assert.Equal(t, "Bearer sp-access", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"abc123","name":"Around the World"}`))
	}))
	defer api.Close()

	h := newTestHandler(t)
	ctx := transportcore.ContextWithAPIClient(context.Background(),
		spotify.NewAPIClient(api.URL, "sp-access"))

	resp, err := h.HandleRequest(ctx, &Request{
		JSONRPC: JSONRPCVersion,
		ID:      5,
		Method:  "tools/call",
		Params:  json.RawMessage(`{"name":"spotify_get","arguments":{"kind":"tracks","id":"abc123"}}`),
	})
	require.NoError(t, err)
	require.False(t, resp.IsError())

	result, ok := resp.Result.(ToolsCallResult)
	require.True(t, ok)
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "Around the World")
}

func TestToolRegistry(t *testing.T) {
	registry := NewToolRegistry()

	require.NoError(t, registry.RegisterTool("spotify_search", NewSearchTool()))
	assert.ErrorIs(t, registry.RegisterTool("spotify_search", NewSearchTool()), ErrToolAlreadyRegistered)
	assert.Error(t, registry.RegisterTool("", NewSearchTool()))
	assert.Error(t, registry.RegisterTool("x", nil))

	tool, err := registry.GetTool("spotify_search")
	require.NoError(t, err)
	assert.Equal(t, "spotify_search", tool.Definition().Name)

	_, err = registry.GetTool("missing")
	assert.ErrorIs(t, err, ErrToolNotFound)

	defs := registry.ListTools()
	assert.Len(t, defs, 1)
}
