package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"spotbridge/internal/bridge"
	"spotbridge/internal/config"
	"spotbridge/internal/mcp"
	"spotbridge/internal/transport/internal/handlers"
	transporthttp "spotbridge/internal/transport/internal/http"
	"spotbridge/internal/transport/internal/middleware"
)

// NewServer creates a configured HTTP server.
// The server is configured with timeouts from the config and uses the provided router.
func NewServer(cfg *config.Config, router Router) Server {
	return transporthttp.NewServer(cfg, router)
}

// NewRouter creates a new HTTP router backed by http.ServeMux.
func NewRouter() Router {
	return transporthttp.NewRouter()
}

// NewResponder creates a responder for writing HTTP responses.
// If logger is nil, it uses the default slog logger.
func NewResponder(logger *slog.Logger) Responder {
	return transporthttp.NewResponder(logger)
}

// NewAuthMiddleware creates bearer token authentication middleware.
// It resolves bridge access tokens through the service and stores the
// token record and a Spotify API client in the request context.
func NewAuthMiddleware(service *bridge.Service, responder Responder, apiBaseURL string) Middleware {
	return middleware.NewAuthMiddleware(service, responder, apiBaseURL)
}

// NewLoggingMiddleware creates request logging middleware.
// If logger is nil, it uses the default slog logger.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return middleware.NewLoggingMiddleware(logger)
}

// NewRecoveryMiddleware creates panic recovery middleware.
// It recovers from panics and returns a 500 error to the client.
func NewRecoveryMiddleware(responder Responder, logger *slog.Logger) Middleware {
	return middleware.NewRecoveryMiddleware(responder, logger)
}

// NewRegisterHandler creates the dynamic client registration handler.
func NewRegisterHandler(registry *bridge.Registry, issuer *bridge.RegistrationTokenIssuer, baseURL string, responder Responder) http.Handler {
	return handlers.NewRegisterHandler(registry, issuer, baseURL, responder)
}

// NewClientConfigHandler creates the client configuration handler.
func NewClientConfigHandler(registry *bridge.Registry, issuer *bridge.RegistrationTokenIssuer, responder Responder) http.Handler {
	return handlers.NewClientConfigHandler(registry, issuer, responder)
}

// NewAuthorizeHandler creates the authorization endpoint handler.
func NewAuthorizeHandler(service *bridge.Service, registry *bridge.Registry, responder Responder) http.Handler {
	return handlers.NewAuthorizeHandler(service, registry, responder)
}

// NewConnectHandler creates the Spotify connect handler.
func NewConnectHandler(service *bridge.Service, responder Responder) http.Handler {
	return handlers.NewConnectHandler(service, responder)
}

// NewCallbackHandler creates the Spotify callback handler.
func NewCallbackHandler(service *bridge.Service, responder Responder) http.Handler {
	return handlers.NewCallbackHandler(service, responder)
}

// NewTokenHandler creates the token endpoint handler.
func NewTokenHandler(service *bridge.Service, responder Responder) http.Handler {
	return handlers.NewTokenHandler(service, responder)
}

// NewDiscoveryHandler creates the authorization server metadata handler.
func NewDiscoveryHandler(baseURL string, scopes []string, responder Responder) http.Handler {
	return handlers.NewDiscoveryHandler(baseURL, scopes, responder)
}

// NewHealthHandler creates the health check handler.
func NewHealthHandler(responder Responder) http.Handler {
	return handlers.NewHealthHandler(responder)
}

// NewMCPHandler creates the MCP protocol handler.
func NewMCPHandler(handler mcp.Handler, responder Responder) http.Handler {
	return handlers.NewMCPHandler(handler, responder)
}

// Config holds the dependencies needed to assemble the transport layer.
type Config struct {
	// ServerConfig is the server configuration.
	ServerConfig *config.Config

	// Service orchestrates the bridging flow.
	Service *bridge.Service

	// Registry manages registered clients.
	Registry *bridge.Registry

	// RegistrationTokenIssuer guards the client configuration endpoint.
	RegistrationTokenIssuer *bridge.RegistrationTokenIssuer

	// MCPHandler processes MCP protocol requests.
	MCPHandler mcp.Handler

	// Logger is used for request logging. Nil selects the default.
	Logger *slog.Logger
}

// NewTransportServices creates all transport layer services from the
// configuration. This is a convenience function for dependency injection
// that wires up the complete HTTP transport layer with routing, middleware,
// and handlers.
func NewTransportServices(cfg *Config) (Server, Router, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.ServerConfig == nil {
		return nil, nil, fmt.Errorf("server config cannot be nil")
	}
	if cfg.Service == nil {
		return nil, nil, fmt.Errorf("service cannot be nil")
	}
	if cfg.Registry == nil {
		return nil, nil, fmt.Errorf("registry cannot be nil")
	}
	if cfg.RegistrationTokenIssuer == nil {
		return nil, nil, fmt.Errorf("registration token issuer cannot be nil")
	}
	if cfg.MCPHandler == nil {
		return nil, nil, fmt.Errorf("mcp handler cannot be nil")
	}

	responder := NewResponder(cfg.Logger)

	recoveryMiddleware := NewRecoveryMiddleware(responder, cfg.Logger)
	loggingMiddleware := NewLoggingMiddleware(cfg.Logger)
	authMiddleware := NewAuthMiddleware(cfg.Service, responder, cfg.ServerConfig.SpotifyAPIURL)

	router := NewRouter()
	router.Use(recoveryMiddleware, loggingMiddleware)

	baseURL := cfg.ServerConfig.BaseURL
	scopes := cfg.ServerConfig.SpotifyScopes

	// OAuth endpoints.
	router.Handle("POST /register", NewRegisterHandler(cfg.Registry, cfg.RegistrationTokenIssuer, baseURL, responder))
	clientConfigHandler := NewClientConfigHandler(cfg.Registry, cfg.RegistrationTokenIssuer, responder)
	router.Handle("GET /register/{client_id}", clientConfigHandler)
	router.Handle("DELETE /register/{client_id}", clientConfigHandler)
	router.Handle("GET /authorize", NewAuthorizeHandler(cfg.Service, cfg.Registry, responder))
	router.Handle("POST /token", NewTokenHandler(cfg.Service, responder))

	// Spotify round-trip endpoints.
	router.Handle("GET /spotify/connect", NewConnectHandler(cfg.Service, responder))
	router.Handle("GET /spotify/callback", NewCallbackHandler(cfg.Service, responder))

	// Discovery and health.
	router.Handle("GET /.well-known/oauth-authorization-server", NewDiscoveryHandler(baseURL, scopes, responder))
	router.Handle("GET /health", NewHealthHandler(responder))

	// Protected MCP endpoint.
	authenticatedMCP := authMiddleware(NewMCPHandler(cfg.MCPHandler, responder))
	router.Handle("POST /mcp", authenticatedMCP)

	server := NewServer(cfg.ServerConfig, router)

	return server, router, nil
}
