package transportcore

import (
	"context"

	"spotbridge/internal/bridge"
	"spotbridge/internal/spotify"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// tokenContextKey is the context key for the authenticated bridge token.
	tokenContextKey contextKey = "bridge_token"

	// apiClientContextKey is the context key for the Spotify API client
	// bound to the authenticated token.
	apiClientContextKey contextKey = "spotify_api_client"
)

// TokenFromContext extracts the authenticated bridge token record from the
// request context. Returns nil and false if absent.
func TokenFromContext(ctx context.Context) (*bridge.BridgeAccessToken, bool) {
	if ctx == nil {
		return nil, false
	}
	record, ok := ctx.Value(tokenContextKey).(*bridge.BridgeAccessToken)
	return record, ok
}

// ContextWithToken adds the authenticated bridge token record to the
// request context. Used by authentication middleware.
func ContextWithToken(ctx context.Context, record *bridge.BridgeAccessToken) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, tokenContextKey, record)
}

// APIClientFromContext extracts the per-request Spotify API client from the
// request context. Returns nil and false if absent.
func APIClientFromContext(ctx context.Context) (*spotify.APIClient, bool) {
	if ctx == nil {
		return nil, false
	}
	client, ok := ctx.Value(apiClientContextKey).(*spotify.APIClient)
	return client, ok
}

// ContextWithAPIClient adds a Spotify API client to the request context.
func ContextWithAPIClient(ctx context.Context, client *spotify.APIClient) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, apiClientContextKey, client)
}
