// Package transport provides the HTTP transport layer for the bridge.
// It wires the OAuth endpoints, the Spotify round-trip endpoints, and the
// authenticated MCP endpoint onto a router with shared middleware.
package transport

import (
	"spotbridge/internal/transport/transportcore"
)

// Re-export types from transportcore so external packages can import
// transport without creating cycles.

// Middleware is a function that wraps an http.Handler.
type Middleware = transportcore.Middleware

// Server manages the HTTP server lifecycle.
// Implementations must support graceful shutdown and provide
// access to the bound address after startup.
type Server = transportcore.Server

// Router handles HTTP request routing and middleware composition.
// It extends http.Handler with pattern-based routing and middleware support.
type Router = transportcore.Router

// Responder writes HTTP responses in the formats the bridge speaks.
type Responder = transportcore.Responder
