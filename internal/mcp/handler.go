package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	internalerrors "spotbridge/internal/errors"
)

// handler implements the Handler interface.
// It routes JSON-RPC requests to appropriate method handlers.
type handler struct {
	toolRegistry ToolRegistry
	serverInfo   serverInfo
}

// serverInfo contains metadata about the MCP server.
type serverInfo struct {
	Name    string
	Version string
}

// newHandler creates a new MCP protocol handler.
func newHandler(toolRegistry ToolRegistry, info serverInfo) Handler {
	if toolRegistry == nil {
		panic("toolRegistry cannot be nil")
	}
	return &handler{
		toolRegistry: toolRegistry,
		serverInfo:   info,
	}
}

// HandleRequest processes an MCP JSON-RPC request.
func (h *handler) HandleRequest(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return h.errorResponse(nil, CodeInvalidRequest, "request cannot be nil", nil), nil
	}

	if req.JSONRPC != JSONRPCVersion {
		return h.errorResponse(req.ID, CodeInvalidRequest, "invalid jsonrpc version", nil), nil
	}

	if req.Method == "" {
		return h.errorResponse(req.ID, CodeInvalidRequest, "method is required", nil), nil
	}

	switch req.Method {
	case "initialize":
		return h.handleInitialize(ctx, req)
	case "tools/list":
		return h.handleToolsList(ctx, req)
	case "tools/call":
		return h.handleToolsCall(ctx, req)
	default:
		return h.errorResponse(req.ID, CodeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method), nil), nil
	}
}

// handleInitialize handles the initialize method.
func (h *handler) handleInitialize(_ context.Context, req *Request) (*Response, error) {
	var params InitializeParams
	if req.Params != nil {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return h.errorResponse(req.ID, CodeInvalidParams, "invalid initialize params", err.Error()), nil
		}
	}

	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo: ServerInfoResponse{
			Name:    h.serverInfo.Name,
			Version: h.serverInfo.Version,
		},
		Capabilities: Capabilities{
			Tools: &ToolsCapability{},
		},
	}

	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      req.ID,
		Result:  result,
	}, nil
}

// handleToolsList handles the tools/list method.
func (h *handler) handleToolsList(_ context.Context, req *Request) (*Response, error) {
	result := ToolsListResult{
		Tools: h.toolRegistry.ListTools(),
	}

	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      req.ID,
		Result:  result,
	}, nil
}

// handleToolsCall handles the tools/call method.
func (h *handler) handleToolsCall(ctx context.Context, req *Request) (*Response, error) {
	if req.Params == nil {
		return h.errorResponse(req.ID, CodeInvalidParams, "params required", nil), nil
	}

	var params ToolsCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return h.errorResponse(req.ID, CodeInvalidParams, "invalid tools/call params", err.Error()), nil
	}

	if params.Name == "" {
		return h.errorResponse(req.ID, CodeInvalidParams, "tool name is required", nil), nil
	}

	tool, err := h.toolRegistry.GetTool(params.Name)
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			return h.errorResponse(req.ID, CodeToolNotFound, fmt.Sprintf("tool not found: %s", params.Name), nil), nil
		}
		domainErr := internalerrors.New("mcp", "HandleRequest", internalerrors.ErrInternal, err)
		return h.errorResponse(req.ID, CodeInternalError, "failed to get tool", domainErr.Error()), nil
	}

	toolResult, err := tool.Execute(ctx, params.Arguments)
	if err != nil {
		// Tool-level failures stay inside the result envelope so clients
		// can surface them without treating the RPC itself as failed.
		return &Response{
			JSONRPC: JSONRPCVersion,
			ID:      req.ID,
			Result: ToolsCallResult{
				Content: []Content{{Type: "text", Text: err.Error()}},
				IsError: true,
			},
		}, nil
	}

	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      req.ID,
		Result: ToolsCallResult{
			Content: []Content{{Type: "text", Text: renderToolResult(toolResult)}},
		},
	}, nil
}

// renderToolResult serializes a tool result for the content envelope.
// json.RawMessage and strings pass through untouched.
func renderToolResult(result any) string {
	switch v := result.(type) {
	case json.RawMessage:
		return string(v)
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// errorResponse creates a JSON-RPC error response.
func (h *handler) errorResponse(id any, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}
