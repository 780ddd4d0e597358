// Package oauth provides shared OAuth 2.0 types and constants for the
// spotbridge authorization server.
package oauth

// Token type constants as defined in RFC 6750.
const (
	// BearerToken is the OAuth 2.0 Bearer token type.
	BearerToken = "Bearer"
)

// Grant types as defined in OAuth 2.0.
const (
	// GrantTypeAuthorizationCode is the authorization code grant type.
	GrantTypeAuthorizationCode = "authorization_code"

	// GrantTypeRefreshToken is the refresh token grant type.
	GrantTypeRefreshToken = "refresh_token"
)

// Response types as defined in OAuth 2.0.
const (
	// ResponseTypeCode is the authorization code response type.
	// The bridge only supports the code response type.
	ResponseTypeCode = "code"
)

// PKCE code challenge methods as defined in RFC 7636.
// The bridge requires S256; the plain method is rejected to prevent
// PKCE downgrade.
const (
	// CodeChallengeMethodS256 is the SHA-256 code challenge method.
	CodeChallengeMethodS256 = "S256"
)

// Client registration defaults per RFC 7591 for public clients.
const (
	// TokenEndpointAuthNone indicates a public client that does not
	// authenticate at the token endpoint.
	TokenEndpointAuthNone = "none"
)

// HTTP header names.
const (
	// HeaderAuthorization is the Authorization HTTP header name.
	HeaderAuthorization = "Authorization"

	// HeaderWWWAuthenticate is the WWW-Authenticate HTTP header name.
	HeaderWWWAuthenticate = "WWW-Authenticate"

	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"

	// HeaderLocation is the Location HTTP header name.
	HeaderLocation = "Location"
)

// Content type constants.
const (
	// ContentTypeJSON is the application/json content type.
	ContentTypeJSON = "application/json"

	// ContentTypeFormURLEncoded is the application/x-www-form-urlencoded content type.
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"

	// ContentTypeHTML is the text/html content type.
	ContentTypeHTML = "text/html; charset=utf-8"

	// ContentTypeText is the text/plain content type.
	ContentTypeText = "text/plain; charset=utf-8"
)

// TokenResponse is the JSON body returned by the bridge token endpoint
// per RFC 6749 Section 5.1.
type TokenResponse struct {
	// AccessToken is the opaque bridge access token.
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`

	// Scope is the space-separated granted scope set.
	Scope string `json:"scope,omitempty"`
}

// ErrorResponse is the JSON error body for OAuth-spec endpoints per
// RFC 6749 Section 5.2.
type ErrorResponse struct {
	// Error is the OAuth error code.
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description,omitempty"`
}
