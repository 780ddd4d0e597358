package spotify

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ierrors "spotbridge/internal/errors"
	pkgoauth "spotbridge/pkg/oauth"
)

// maxResponseSize bounds token endpoint response bodies (1 MiB).
const maxResponseSize = 1 << 20

// HTTPDoer is the subset of http.Client used by this package.
// It allows tests to inject fakes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AuthConfig holds the fixed upstream constants for the Spotify application.
// An AuthClient is constructed once at startup from this config and passed
// by reference into the bridge.
type AuthConfig struct {
	// ClientID is the Spotify application client id.
	ClientID string

	// ClientSecret is the Spotify application client secret.
	// Optional: with PKCE the bridge operates as a public client.
	ClientSecret string

	// AuthURL is Spotify's authorization endpoint.
	AuthURL string

	// TokenURL is Spotify's token endpoint.
	TokenURL string

	// RedirectURI is the bridge's Spotify-facing callback URL.
	RedirectURI string

	// Scopes are the Spotify scopes requested during authorization.
	Scopes []string
}

// AuthState is the per-round-trip secret material the caller must persist
// between issuing the authorization URL and handling Spotify's callback.
type AuthState struct {
	// CodeVerifier is the PKCE code_verifier for the upstream leg.
	CodeVerifier string

	// State is the freshly generated upstream state parameter. It is
	// independent of any state supplied by the bridge's own clients, keeping
	// the two OAuth legs cryptographically unlinked.
	State string

	// RedirectURI is the callback URL sent to Spotify.
	RedirectURI string
}

// AuthClient performs the upstream OAuth 2.0 legs against Spotify.
type AuthClient struct {
	cfg        AuthConfig
	httpClient HTTPDoer
}

// AuthClientOption configures an AuthClient.
type AuthClientOption func(*AuthClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client HTTPDoer) AuthClientOption {
	return func(c *AuthClient) {
		c.httpClient = client
	}
}

// NewAuthClient creates the upstream Spotify OAuth client.
func NewAuthClient(cfg AuthConfig, opts ...AuthClientOption) (*AuthClient, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("spotify client id is required")
	}
	if cfg.AuthURL == "" || cfg.TokenURL == "" {
		return nil, fmt.Errorf("spotify auth and token URLs are required")
	}
	if cfg.RedirectURI == "" {
		return nil, fmt.Errorf("spotify redirect URI is required")
	}

	c := &AuthClient{
		cfg:        cfg,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// AuthorizationURL builds Spotify's authorization URL with a fresh PKCE pair
// and a fresh upstream state. The returned AuthState must be persisted by
// the caller so the callback can complete the exchange.
func (c *AuthClient) AuthorizationURL() (string, *AuthState, error) {
	verifier := pkgoauth.GenerateCodeVerifier()
	challenge := pkgoauth.CodeChallengeS256(verifier)

	state, err := randomState()
	if err != nil {
		return "", nil, ierrors.New("spotify", "AuthorizationURL", ierrors.ErrInternal, err)
	}

	params := url.Values{
		"response_type":         {pkgoauth.ResponseTypeCode},
		"client_id":             {c.cfg.ClientID},
		"redirect_uri":          {c.cfg.RedirectURI},
		"state":                 {state},
		"scope":                 {strings.Join(c.cfg.Scopes, " ")},
		"code_challenge":        {challenge},
		"code_challenge_method": {pkgoauth.CodeChallengeMethodS256},
	}

	authState := &AuthState{
		CodeVerifier: verifier,
		State:        state,
		RedirectURI:  c.cfg.RedirectURI,
	}

	return c.cfg.AuthURL + "?" + params.Encode(), authState, nil
}

// ExchangeCode exchanges a Spotify authorization code for tokens.
func (c *AuthClient) ExchangeCode(ctx context.Context, code, codeVerifier string) (*Tokens, error) {
	if code == "" {
		return nil, ierrors.New("spotify", "ExchangeCode", ierrors.ErrBadRequest, fmt.Errorf("authorization code is required"))
	}

	params := url.Values{
		"grant_type":    {pkgoauth.GrantTypeAuthorizationCode},
		"code":          {code},
		"redirect_uri":  {c.cfg.RedirectURI},
		"client_id":     {c.cfg.ClientID},
		"code_verifier": {codeVerifier},
	}
	if c.cfg.ClientSecret != "" {
		params.Set("client_secret", c.cfg.ClientSecret)
	}

	return c.tokenRequest(ctx, "ExchangeCode", params)
}

// Refresh exchanges a Spotify refresh token for fresh tokens.
// If Spotify omits a new refresh token, Tokens.RefreshToken is empty and the
// caller must retain the previous one.
func (c *AuthClient) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	if refreshToken == "" {
		return nil, ierrors.New("spotify", "Refresh", ierrors.ErrBadRequest, fmt.Errorf("refresh token is required"))
	}

	params := url.Values{
		"grant_type":    {pkgoauth.GrantTypeRefreshToken},
		"refresh_token": {refreshToken},
		"client_id":     {c.cfg.ClientID},
	}
	if c.cfg.ClientSecret != "" {
		params.Set("client_secret", c.cfg.ClientSecret)
	}

	return c.tokenRequest(ctx, "Refresh", params)
}

// tokenRequest performs a form POST against Spotify's token endpoint.
// Non-2xx responses are surfaced with their status and body so callers can
// see exactly what Spotify rejected.
func (c *AuthClient) tokenRequest(ctx context.Context, op string, params url.Values) (*Tokens, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.TokenURL,
		strings.NewReader(params.Encode()),
	)
	if err != nil {
		return nil, ierrors.New("spotify", op, ierrors.ErrInternal, fmt.Errorf("failed to create token request: %w", err))
	}

	req.Header.Set(pkgoauth.HeaderContentType, pkgoauth.ContentTypeFormURLEncoded)
	req.Header.Set("Accept", pkgoauth.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream, fmt.Errorf("token request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream, fmt.Errorf("failed to read token response: %w", err))
	}

	return parseTokenResponse(op, resp.StatusCode, body)
}

// tokenResponse is the JSON body of Spotify's token endpoint.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// parseTokenResponse converts a token endpoint response into Tokens.
func parseTokenResponse(op string, statusCode int, body []byte) (*Tokens, error) {
	if statusCode < 200 || statusCode >= 300 {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream,
			fmt.Errorf("token endpoint returned %d: %s", statusCode, strings.TrimSpace(string(body)))).
			WithContext("status_code", statusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream, fmt.Errorf("failed to parse token response: %w", err))
	}

	if tr.AccessToken == "" {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream, fmt.Errorf("token response missing access_token"))
	}

	tokens := &Tokens{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		tokens.ExpiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}

	return tokens, nil
}

// randomState generates an unpredictable upstream state parameter.
func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
