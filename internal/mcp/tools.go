package mcp

import (
	"context"
	"fmt"

	"spotbridge/internal/spotify"
	"spotbridge/internal/transport/transportcore"
)

// searchTool exposes Spotify catalog search as an MCP tool. The API client
// comes from the request context, placed there by the authentication
// middleware.
type searchTool struct{}

// NewSearchTool creates the spotify_search tool.
func NewSearchTool() Tool {
	return &searchTool{}
}

func (t *searchTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        "spotify_search",
		Description: "Search the Spotify catalog for tracks, albums, artists, or playlists.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query",
				},
				"kind": map[string]any{
					"type":        "string",
					"description": "Result type: track, album, artist, or playlist",
					"enum":        []string{"track", "album", "artist", "playlist"},
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (1-50)",
				},
			},
			"required": []string{"query"},
		},
	}
}

func (t *searchTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	client, ok := transportcore.APIClientFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	query, _ := args["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	kind, _ := args["kind"].(string)

	limit := 0
	// JSON numbers decode as float64.
	if raw, ok := args["limit"].(float64); ok {
		limit = int(raw)
	}

	return client.Search(ctx, query, kind, limit)
}

// getTool exposes single-resource lookup as an MCP tool.
type getTool struct{}

// NewGetTool creates the spotify_get tool.
func NewGetTool() Tool {
	return &getTool{}
}

func (t *getTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        "spotify_get",
		Description: "Fetch a Spotify track, album, artist, or playlist by id.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind": map[string]any{
					"type":        "string",
					"description": "Resource collection",
					"enum":        []string{"tracks", "albums", "artists", "playlists"},
				},
				"id": map[string]any{
					"type":        "string",
					"description": "Spotify resource id",
				},
			},
			"required": []string{"kind", "id"},
		},
	}
}

func (t *getTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	client, ok := transportcore.APIClientFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	kind, _ := args["kind"].(string)
	id, _ := args["id"].(string)
	if kind == "" || id == "" {
		return nil, fmt.Errorf("kind and id are required")
	}

	return client.GetResource(ctx, spotify.ResourceKind(kind), id)
}
