// Package middleware provides HTTP middleware for the transport layer.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"spotbridge/internal/bridge"
	"spotbridge/internal/spotify"
	"spotbridge/internal/transport/transportcore"
	pkgoauth "spotbridge/pkg/oauth"
)

// TokenAuthenticator resolves a presented bridge access token to its record.
// *bridge.Service satisfies it.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*bridge.BridgeAccessToken, error)
}

// authMiddleware validates bridge bearer tokens.
type authMiddleware struct {
	authenticator TokenAuthenticator
	responder     transportcore.Responder
	apiBaseURL    string
}

// NewAuthMiddleware creates bearer token authentication middleware.
// Successful authentication stores the token record and a Spotify API
// client bound to the mapped Spotify access token in the request context.
func NewAuthMiddleware(
	authenticator TokenAuthenticator,
	responder transportcore.Responder,
	apiBaseURL string,
) transportcore.Middleware {
	if authenticator == nil {
		panic("authenticator cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	m := &authMiddleware{
		authenticator: authenticator,
		responder:     responder,
		apiBaseURL:    apiBaseURL,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r)
			if err != nil {
				m.responder.Unauthorized(w, err)
				return
			}

			record, err := m.authenticator.Authenticate(r.Context(), token)
			if err != nil {
				m.responder.Unauthorized(w, err)
				return
			}

			// The Spotify access token in the record is guaranteed fresh:
			// Authenticate refreshes it when expired.
			client := spotify.NewAPIClient(m.apiBaseURL, record.ProviderTokens.AccessToken)

			ctx := transportcore.ContextWithToken(r.Context(), record)
			ctx = transportcore.ContextWithAPIClient(ctx, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the Bearer token from the Authorization header.
// Returns an error if the header is missing or not in the correct format.
//
// Format: Authorization: Bearer <token>
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(pkgoauth.HeaderAuthorization)
	if authHeader == "" {
		return "", transportcore.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", transportcore.ErrInvalidToken
	}

	// Scheme is case-insensitive per RFC 6750.
	if !strings.EqualFold(parts[0], pkgoauth.BearerToken) {
		return "", transportcore.ErrInvalidToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", transportcore.ErrMissingToken
	}

	return token, nil
}
