package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"spotbridge/internal/mcp"
	"spotbridge/internal/transport/transportcore"
	pkgoauth "spotbridge/pkg/oauth"
)

// mcpHandler handles MCP protocol requests over HTTP.
type mcpHandler struct {
	handler   mcp.Handler
	responder transportcore.Responder
}

// NewMCPHandler creates a handler for MCP JSON-RPC requests.
// It parses JSON-RPC requests, delegates to the MCP handler, and returns
// JSON-RPC responses.
func NewMCPHandler(handler mcp.Handler, responder transportcore.Responder) http.Handler {
	if handler == nil {
		panic("handler cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &mcpHandler{
		handler:   handler,
		responder: responder,
	}
}

func (h *mcpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read request body", "error", err)
		h.sendJSONRPCError(w, nil, mcp.CodeParseError, "Parse error", err)
		return
	}
	defer func() {
		if closeErr := r.Body.Close(); closeErr != nil {
			slog.Warn("failed to close request body", "error", closeErr)
		}
	}()

	var req mcp.Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.sendJSONRPCError(w, nil, mcp.CodeParseError, "Parse error", err)
		return
	}

	if err := req.Validate(); err != nil {
		h.sendJSONRPCError(w, req.ID, mcp.CodeInvalidRequest, "Invalid request", err)
		return
	}

	resp, err := h.handler.HandleRequest(r.Context(), &req)
	if err != nil {
		slog.Error("mcp handler error", "error", err, "method", req.Method)
		h.sendJSONRPCError(w, req.ID, mcp.CodeInternalError, "Internal error", err)
		return
	}

	h.responder.JSON(w, http.StatusOK, resp)
}

// sendJSONRPCError sends a JSON-RPC error response.
// JSON-RPC errors still return 200 OK.
func (h *mcpHandler) sendJSONRPCError(w http.ResponseWriter, id any, code int, message string, cause error) {
	resp := &mcp.Response{
		JSONRPC: mcp.JSONRPCVersion,
		ID:      id,
		Error: &mcp.Error{
			Code:    code,
			Message: message,
			Cause:   cause,
		},
	}

	w.Header().Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode JSON-RPC error response", "error", err)
	}
}
