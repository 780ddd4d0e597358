// Package mcp implements the Model Context Protocol surface of the bridge:
// a JSON-RPC 2.0 handler and a tool registry exposing Spotify catalog
// lookups to authenticated MCP clients.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
)

// Handler processes MCP protocol requests.
type Handler interface {
	// HandleRequest processes an MCP JSON-RPC request and returns a response.
	// Malformed requests and execution failures are reported as JSON-RPC
	// error responses, not Go errors.
	HandleRequest(ctx context.Context, req *Request) (*Response, error)
}

// Request represents an MCP JSON-RPC 2.0 request.
type Request struct {
	// JSONRPC is the JSON-RPC version, must be "2.0".
	JSONRPC string `json:"jsonrpc"`

	// ID is the request identifier, can be string, number, or null.
	ID any `json:"id,omitempty"`

	// Method is the MCP method name to invoke.
	Method string `json:"method"`

	// Params contains method-specific parameters as raw JSON.
	Params json.RawMessage `json:"params,omitempty"`
}

// Response represents an MCP JSON-RPC 2.0 response.
type Response struct {
	// JSONRPC is the JSON-RPC version, always "2.0".
	JSONRPC string `json:"jsonrpc"`

	// ID matches the request ID.
	ID any `json:"id,omitempty"`

	// Result contains the successful response data.
	Result any `json:"result,omitempty"`

	// Error contains error information if the request failed.
	Error *Error `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	// Code is the error code indicating the error type.
	Code int `json:"code"`

	// Message is a short description of the error.
	Message string `json:"message"`

	// Data contains additional information about the error (optional).
	Data any `json:"data,omitempty"`

	// Cause is the underlying error (not serialized to JSON).
	Cause error `json:"-"`
}

// Protocol constants.
const (
	// ProtocolVersion is the MCP protocol version this implementation supports.
	ProtocolVersion = "2024-11-05"

	// JSONRPCVersion is the JSON-RPC version used by MCP.
	JSONRPCVersion = "2.0"
)

// Standard JSON-RPC 2.0 error codes.
const (
	// CodeParseError indicates invalid JSON was received by the server.
	CodeParseError = -32700

	// CodeInvalidRequest indicates the JSON sent is not a valid Request object.
	CodeInvalidRequest = -32600

	// CodeMethodNotFound indicates the method does not exist or is not available.
	CodeMethodNotFound = -32601

	// CodeInvalidParams indicates invalid method parameters.
	CodeInvalidParams = -32602

	// CodeInternalError indicates an internal JSON-RPC error.
	CodeInternalError = -32603
)

// MCP-specific error codes.
const (
	// CodeToolNotFound indicates the requested tool was not found.
	CodeToolNotFound = -32003
)

// ToolRegistry manages MCP tools. Implementations must be thread-safe.
type ToolRegistry interface {
	// RegisterTool registers a tool with the given name.
	// Returns an error if a tool with the same name is already registered.
	RegisterTool(name string, tool Tool) error

	// GetTool retrieves a tool by name.
	GetTool(name string) (Tool, error)

	// ListTools returns definitions for all registered tools.
	ListTools() []ToolDefinition
}

// Tool represents an executable MCP tool.
type Tool interface {
	// Execute runs the tool with the provided arguments.
	Execute(ctx context.Context, args map[string]any) (any, error)

	// Definition returns the tool's metadata for client discovery.
	Definition() ToolDefinition
}

// ToolDefinition describes a tool's interface for client discovery.
type ToolDefinition struct {
	// Name is the unique identifier for this tool.
	Name string `json:"name"`

	// Description explains what the tool does.
	Description string `json:"description"`

	// InputSchema is a JSON Schema describing the tool's expected parameters.
	InputSchema map[string]any `json:"inputSchema"`
}

// NewError creates a new Error with the given code, message, and optional data.
func NewError(code int, message string, data any) *Error {
	return &Error{Code: code, Message: message, Data: data}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("JSON-RPC error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Validate checks if the request is valid according to JSON-RPC 2.0.
func (r *Request) Validate() error {
	if r.JSONRPC != JSONRPCVersion {
		return ErrInvalidRequest
	}
	if r.Method == "" {
		return ErrInvalidRequest
	}
	return nil
}

// IsError returns true if the response contains an error.
func (r *Response) IsError() bool {
	return r.Error != nil
}
