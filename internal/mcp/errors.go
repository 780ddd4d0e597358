package mcp

import (
	"errors"
)

// Sentinel errors for MCP operations.
var (
	// ErrInvalidRequest indicates the JSON-RPC request is invalid or malformed.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrToolNotFound indicates the requested tool does not exist.
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolAlreadyRegistered indicates a tool with the same name is already registered.
	ErrToolAlreadyRegistered = errors.New("tool already registered")

	// ErrNotAuthenticated indicates no Spotify API client was available on
	// the request context. Tool execution requires an authenticated request.
	ErrNotAuthenticated = errors.New("not authenticated")
)
