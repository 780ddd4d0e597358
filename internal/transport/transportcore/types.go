// Package transportcore provides core types, interfaces, and primitives for
// the transport layer. This package exists to break import cycles between
// the transport package and its internal subpackages.
package transportcore

import (
	"context"
	"net/http"
)

// Middleware is a function that wraps an http.Handler.
// It can modify the request, response, or perform additional logic
// before or after calling the next handler in the chain.
type Middleware func(http.Handler) http.Handler

// Server manages the HTTP server lifecycle.
// Implementations must support graceful shutdown and provide
// access to the bound address after startup.
type Server interface {
	// Start begins serving HTTP requests on the configured address.
	// This is a blocking call that returns when the server stops
	// or encounters an error during startup.
	Start() error

	// Shutdown gracefully shuts down the server without interrupting
	// active connections. It waits for active connections to close
	// or the context to be cancelled/expired.
	Shutdown(ctx context.Context) error

	// Addr returns the address the server is listening on.
	// This is useful when the server is configured to bind to a random port.
	Addr() string
}

// Router handles HTTP request routing and middleware composition.
// It extends http.Handler with pattern-based routing and middleware support.
type Router interface {
	http.Handler

	// Handle registers a handler for the given pattern.
	// The pattern syntax follows http.ServeMux conventions.
	Handle(pattern string, handler http.Handler)

	// HandleFunc registers a handler function for the given pattern.
	HandleFunc(pattern string, handler http.HandlerFunc)

	// Use applies middleware to all subsequent route registrations.
	// Middleware is applied in the order registered.
	Use(middlewares ...Middleware)
}

// Responder writes HTTP responses in the formats the bridge speaks.
// OAuth-spec endpoints (/register, /token) get RFC 6749 JSON error bodies;
// browser-navigated endpoints (/authorize, connect, callback) get plain
// text.
type Responder interface {
	// JSON writes a JSON response body with the given status.
	JSON(w http.ResponseWriter, status int, v any)

	// OAuthError writes an RFC 6749 JSON error body.
	OAuthError(w http.ResponseWriter, status int, errorCode, description string)

	// PlainText writes a plain-text response body.
	PlainText(w http.ResponseWriter, status int, message string)

	// HTML writes an HTML response body.
	HTML(w http.ResponseWriter, status int, body string)

	// Unauthorized writes a 401 with a WWW-Authenticate Bearer challenge
	// per RFC 6750.
	Unauthorized(w http.ResponseWriter, err error)

	// InternalError writes a 500 JSON error body.
	InternalError(w http.ResponseWriter, err error)
}
