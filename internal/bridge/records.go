// Package bridge implements the dual-OAuth credential-bridging core: client
// registration, the authorize/consent step, the Spotify redirect round trip,
// and the exchange of bridge authorization codes for bridge access tokens.
//
// Every cross-request step of the flow is stitched together by short-lived
// records in a TTL-capable key/value store; nothing is held in process
// memory between requests.
package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ProviderTokens are the Spotify credentials carried inside bridge records.
type ProviderTokens struct {
	// AccessToken is the Spotify access token.
	AccessToken string `json:"access_token"`

	// RefreshToken is the Spotify refresh token, if issued.
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is when the Spotify access token expires.
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisteredClient is a dynamically registered public OAuth client.
// Immutable after registration.
type RegisteredClient struct {
	// ClientID is the generated opaque client identifier.
	ClientID string `json:"client_id"`

	// ClientName is the optional human-readable client name.
	ClientName string `json:"client_name,omitempty"`

	// RedirectURIs is the non-empty set of registered redirect URIs.
	RedirectURIs []string `json:"redirect_uris"`

	// GrantTypes are the registered grant types. Always non-empty; defaults
	// are applied at registration time when the request omits them.
	GrantTypes []string `json:"grant_types"`

	// ResponseTypes are the registered response types.
	ResponseTypes []string `json:"response_types"`

	// TokenEndpointAuthMethod is the registered token endpoint auth method.
	TokenEndpointAuthMethod string `json:"token_endpoint_auth_method"`

	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"created_at"`
}

// validate fails closed on records missing required fields.
func (c *RegisteredClient) validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("client record missing client_id")
	}
	if len(c.RedirectURIs) == 0 {
		return fmt.Errorf("client record missing redirect_uris")
	}
	return nil
}

// AuthorizationRequest is a pending /authorize request, keyed by the state
// parameter chosen by the calling MCP client.
type AuthorizationRequest struct {
	// ClientID is the requesting client.
	ClientID string `json:"client_id"`

	// RedirectURI is the validated client redirect URI.
	RedirectURI string `json:"redirect_uri"`

	// CodeChallenge is the client's PKCE S256 code challenge.
	CodeChallenge string `json:"code_challenge"`

	// State is the client-chosen state, echoed back at the end of the flow.
	State string `json:"state"`
}

func (r *AuthorizationRequest) validate() error {
	if r.ClientID == "" || r.RedirectURI == "" || r.CodeChallenge == "" || r.State == "" {
		return fmt.Errorf("authorization request record is incomplete")
	}
	return nil
}

// ProviderRoundTripState tracks the Spotify leg of the flow, keyed by the
// bridge-generated upstream state. It embeds the original authorization
// request so the callback can rebind everything to the original client.
type ProviderRoundTripState struct {
	// CodeVerifier is the PKCE verifier for the Spotify exchange.
	CodeVerifier string `json:"code_verifier"`

	// State is the upstream state parameter, generated independently of the
	// client-supplied one so the two OAuth legs stay unlinked.
	State string `json:"state"`

	// RedirectURI is the Spotify-facing callback URL.
	RedirectURI string `json:"redirect_uri"`

	// MCPState back-references the AuthorizationRequest's key.
	MCPState string `json:"mcp_state"`

	// AuthRequest is the embedded original authorization request.
	AuthRequest AuthorizationRequest `json:"auth_request"`
}

func (s *ProviderRoundTripState) validate() error {
	if s.CodeVerifier == "" || s.State == "" || s.MCPState == "" {
		return fmt.Errorf("provider round-trip record is incomplete")
	}
	return s.AuthRequest.validate()
}

// BridgeAuthorizationCode is a single-use code minted after the Spotify
// callback, binding the original client parameters to the Spotify tokens.
type BridgeAuthorizationCode struct {
	// ClientID is the client the code was issued to.
	ClientID string `json:"client_id"`

	// RedirectURI is the redirect URI bound at authorization time.
	RedirectURI string `json:"redirect_uri"`

	// CodeChallenge is the PKCE challenge bound at authorization time.
	CodeChallenge string `json:"code_challenge"`

	// ProviderTokens are the Spotify tokens obtained during the callback.
	ProviderTokens ProviderTokens `json:"provider_tokens"`
}

func (c *BridgeAuthorizationCode) validate() error {
	if c.ClientID == "" || c.RedirectURI == "" {
		return fmt.Errorf("authorization code record is incomplete")
	}
	if c.ProviderTokens.AccessToken == "" {
		return fmt.Errorf("authorization code record missing provider tokens")
	}
	return nil
}

// BridgeAccessToken is the opaque bearer credential issued to the MCP
// client, mapping to the underlying Spotify tokens.
type BridgeAccessToken struct {
	// ClientID is the client the token was issued to.
	ClientID string `json:"client_id"`

	// ProviderTokens are the Spotify tokens this bridge token maps to.
	ProviderTokens ProviderTokens `json:"provider_tokens"`

	// CreatedAt is the issuance time.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the semantic expiry, checked lazily on every use in
	// addition to the store TTL.
	ExpiresAt time.Time `json:"expires_at"`
}

func (t *BridgeAccessToken) validate() error {
	if t.ClientID == "" || t.ProviderTokens.AccessToken == "" {
		return fmt.Errorf("access token record is incomplete")
	}
	if t.ExpiresAt.IsZero() {
		return fmt.Errorf("access token record missing expiry")
	}
	return nil
}

// Expired reports whether the bridge token is past its semantic lifetime.
func (t *BridgeAccessToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// decodeRecord deserializes a stored record strictly: unknown fields are
// rejected so a corrupted or partially written record fails closed instead
// of silently producing zero-valued fields.
func decodeRecord(data []byte, dst interface{ validate() error }) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("corrupt record: %w", err)
	}

	if err := dst.validate(); err != nil {
		return fmt.Errorf("corrupt record: %w", err)
	}

	return nil
}
