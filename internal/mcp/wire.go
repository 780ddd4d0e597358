package mcp

// Config holds configuration for MCP services.
type Config struct {
	// ServerName is the name of the MCP server.
	ServerName string

	// ServerVersion is the version of the MCP server.
	ServerVersion string
}

// NewHandler creates a new MCP protocol handler.
// The handler routes JSON-RPC requests to the tool registry.
func NewHandler(cfg *Config, toolRegistry ToolRegistry) Handler {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if toolRegistry == nil {
		panic("toolRegistry cannot be nil")
	}

	return newHandler(toolRegistry, serverInfo{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	})
}

// NewMCPServices creates all MCP services from the configuration, with the
// Spotify tools pre-registered. This is a convenience function for
// dependency injection.
func NewMCPServices(cfg *Config) (Handler, ToolRegistry, error) {
	toolRegistry := NewToolRegistry()

	if err := toolRegistry.RegisterTool("spotify_search", NewSearchTool()); err != nil {
		return nil, nil, err
	}
	if err := toolRegistry.RegisterTool("spotify_get", NewGetTool()); err != nil {
		return nil, nil, err
	}

	handler := NewHandler(cfg, toolRegistry)
	return handler, toolRegistry, nil
}
