package bridge

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	ierrors "spotbridge/internal/errors"
	pkgoauth "spotbridge/pkg/oauth"
	"spotbridge/internal/spotify"
	"spotbridge/internal/storage"
)

// ProviderClient is the Spotify-side OAuth surface the service depends on.
// *spotify.AuthClient satisfies it; tests substitute fakes.
type ProviderClient interface {
	AuthorizationURL() (string, *spotify.AuthState, error)
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*spotify.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (*spotify.Tokens, error)
}

// Service orchestrates the credential-bridging flow across the typed stores
// and the Spotify OAuth client. All methods are safe for concurrent use;
// every piece of cross-request state lives in the stores.
type Service struct {
	registry       *Registry
	authRequests   *AuthRequestStore
	providerStates *ProviderStateStore
	authCodes      *AuthCodeStore
	accessTokens   *AccessTokenStore
	provider       ProviderClient
	scopes         []string
	logger         *slog.Logger

	now func() time.Time
}

// NewService wires a bridge service over the given stores and provider client.
func NewService(
	registry *Registry,
	authRequests *AuthRequestStore,
	providerStates *ProviderStateStore,
	authCodes *AuthCodeStore,
	accessTokens *AccessTokenStore,
	provider ProviderClient,
	scopes []string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry:       registry,
		authRequests:   authRequests,
		providerStates: providerStates,
		authCodes:      authCodes,
		accessTokens:   accessTokens,
		provider:       provider,
		scopes:         scopes,
		logger:         logger,
		now:            time.Now,
	}
}

// AuthorizeParams are the query parameters of an /authorize request.
type AuthorizeParams struct {
	ClientID            string
	RedirectURI         string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
	ResponseType        string
}

// Authorize validates an authorization request and persists it as a pending
// AuthorizationRequest keyed by the client-supplied state. Only the S256
// code challenge method is accepted; "plain" and absent methods are
// rejected before any store access. response_type may be omitted; when
// present it must be "code", the only kind of authorization this server
// issues.
func (s *Service) Authorize(ctx context.Context, params AuthorizeParams) (*AuthorizationRequest, error) {
	if params.ClientID == "" || params.RedirectURI == "" || params.State == "" ||
		params.CodeChallenge == "" {
		return nil, ierrors.New("bridge", "Authorize", ierrors.ErrBadRequest, ErrInvalidParameters)
	}
	if params.ResponseType != "" && params.ResponseType != pkgoauth.ResponseTypeCode {
		return nil, ierrors.New("bridge", "Authorize", ierrors.ErrBadRequest,
			fmt.Errorf("%w: unsupported response_type %q", ErrInvalidParameters, params.ResponseType))
	}
	if params.CodeChallengeMethod != pkgoauth.CodeChallengeMethodS256 {
		return nil, ierrors.New("bridge", "Authorize", ierrors.ErrBadRequest,
			fmt.Errorf("%w: code_challenge_method must be S256", ErrInvalidParameters))
	}

	client, err := s.registry.GetClient(ctx, params.ClientID)
	if err != nil {
		return nil, ierrors.New("bridge", "Authorize", ierrors.ErrInternal, err)
	}
	if client == nil {
		return nil, ierrors.New("bridge", "Authorize", ierrors.ErrBadRequest, ErrClientNotFound).
			WithContext("client_id", params.ClientID)
	}

	if err := s.registry.ValidateRedirectURI(client, params.RedirectURI); err != nil {
		return nil, err
	}

	req := &AuthorizationRequest{
		ClientID:      params.ClientID,
		RedirectURI:   params.RedirectURI,
		CodeChallenge: params.CodeChallenge,
		State:         params.State,
	}
	if err := s.authRequests.Put(ctx, req); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "authorization request accepted",
		slog.String("client_id", params.ClientID))

	return req, nil
}

// StartProviderAuth resumes a pending authorization request and begins the
// Spotify leg: it generates a fresh PKCE pair and upstream state, records
// the round trip keyed by the upstream state, and returns the Spotify
// authorization URL to redirect the user to.
func (s *Service) StartProviderAuth(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ierrors.New("bridge", "StartProviderAuth", ierrors.ErrBadRequest, ErrInvalidParameters)
	}

	req, err := s.authRequests.Get(ctx, state)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ierrors.New("bridge", "StartProviderAuth", ierrors.ErrNotFound, ErrAuthRequestGone)
		}
		return "", err
	}

	authURL, authState, err := s.provider.AuthorizationURL()
	if err != nil {
		return "", ierrors.New("bridge", "StartProviderAuth", ierrors.ErrInternal, err)
	}

	rt := &ProviderRoundTripState{
		CodeVerifier: authState.CodeVerifier,
		State:        authState.State,
		RedirectURI:  authState.RedirectURI,
		MCPState:     state,
		AuthRequest:  *req,
	}
	if err := s.providerStates.Put(ctx, rt); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "provider round trip started",
		slog.String("client_id", req.ClientID))

	return authURL, nil
}

// CompleteProviderAuth handles the Spotify callback: it resolves the
// upstream state, exchanges the Spotify code for tokens, mints a single-use
// bridge authorization code bound to the original client parameters, and
// returns the client redirect URL carrying the bridge code and the client's
// original state.
//
// When the Spotify exchange fails the pending records are left intact; the
// user can retry the round trip until the records expire.
func (s *Service) CompleteProviderAuth(ctx context.Context, code, providerState string) (string, error) {
	if code == "" || providerState == "" {
		return "", ierrors.New("bridge", "CompleteProviderAuth", ierrors.ErrBadRequest, ErrInvalidParameters)
	}

	rt, err := s.providerStates.Get(ctx, providerState)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ierrors.New("bridge", "CompleteProviderAuth", ierrors.ErrNotFound, ErrProviderStateGone)
		}
		return "", err
	}

	tokens, err := s.provider.ExchangeCode(ctx, code, rt.CodeVerifier)
	if err != nil {
		return "", ierrors.New("bridge", "CompleteProviderAuth", ierrors.ErrUpstream,
			fmt.Errorf("token exchange failed: %w", err))
	}

	bridgeCode, err := newOpaqueToken()
	if err != nil {
		return "", ierrors.New("bridge", "CompleteProviderAuth", ierrors.ErrInternal, err)
	}

	record := &BridgeAuthorizationCode{
		ClientID:      rt.AuthRequest.ClientID,
		RedirectURI:   rt.AuthRequest.RedirectURI,
		CodeChallenge: rt.AuthRequest.CodeChallenge,
		ProviderTokens: ProviderTokens{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			ExpiresAt:    tokens.ExpiresAt,
		},
	}
	if err := s.authCodes.Put(ctx, bridgeCode, record); err != nil {
		return "", err
	}

	// Consume both pending records. The flow has already succeeded; a
	// delete failure only leaves garbage that the store TTL reclaims.
	if err := s.authRequests.Delete(ctx, rt.MCPState); err != nil {
		s.logger.WarnContext(ctx, "failed to delete authorization request", slog.Any("error", err))
	}
	if err := s.providerStates.Delete(ctx, rt.State); err != nil {
		s.logger.WarnContext(ctx, "failed to delete provider state", slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "bridge authorization code issued",
		slog.String("client_id", rt.AuthRequest.ClientID))

	return buildClientRedirect(rt.AuthRequest.RedirectURI, bridgeCode, rt.AuthRequest.State)
}

// TokenRequest are the form parameters of a /token request.
type TokenRequest struct {
	GrantType    string
	Code         string
	CodeVerifier string
	ClientID     string
	RedirectURI  string
}

// ExchangeCode redeems a bridge authorization code for a bridge access
// token. The code is single use: the record is deleted before the token is
// minted, so a replayed code fails regardless of how the first exchange
// ended.
func (s *Service) ExchangeCode(ctx context.Context, req TokenRequest) (*pkgoauth.TokenResponse, error) {
	if req.GrantType != pkgoauth.GrantTypeAuthorizationCode {
		return nil, ierrors.NewInvalidRequestError("ExchangeCode",
			fmt.Sprintf("Unsupported grant_type: %s", req.GrantType))
	}
	if req.Code == "" || req.CodeVerifier == "" || req.ClientID == "" {
		return nil, ierrors.NewInvalidRequestError("ExchangeCode", "Missing required parameters")
	}

	record, err := s.authCodes.Get(ctx, req.Code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ierrors.NewInvalidGrantError("ExchangeCode", "Invalid authorization code", ErrInvalidCode)
		}
		return nil, err
	}

	// Generic on purpose: the response never reveals which binding failed.
	if record.ClientID != req.ClientID || record.RedirectURI != req.RedirectURI {
		return nil, ierrors.NewInvalidGrantError("ExchangeCode", "Client mismatch", ErrClientMismatch)
	}

	client, err := s.registry.GetClient(ctx, req.ClientID)
	if err != nil {
		return nil, ierrors.New("bridge", "ExchangeCode", ierrors.ErrInternal, err)
	}
	if client == nil {
		return nil, ierrors.NewInvalidClientError("ExchangeCode", "Client not found")
	}

	// Delete before minting so the code is burned even if minting fails.
	if err := s.authCodes.Delete(ctx, req.Code); err != nil {
		return nil, ierrors.New("bridge", "ExchangeCode", ierrors.ErrInternal, err)
	}

	token, err := newOpaqueToken()
	if err != nil {
		return nil, ierrors.New("bridge", "ExchangeCode", ierrors.ErrInternal, err)
	}

	now := s.now().UTC()
	ttl := s.accessTokens.TTL()
	accessToken := &BridgeAccessToken{
		ClientID:       record.ClientID,
		ProviderTokens: record.ProviderTokens,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}
	if err := s.accessTokens.Put(ctx, token, accessToken); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "bridge access token issued",
		slog.String("client_id", record.ClientID))

	return &pkgoauth.TokenResponse{
		AccessToken: token,
		TokenType:   pkgoauth.BearerToken,
		ExpiresIn:   int64(ttl.Seconds()),
		Scope:       strings.Join(s.scopes, " "),
	}, nil
}

// Authenticate resolves a presented bridge access token to its record,
// enforcing the semantic expiry and transparently refreshing the underlying
// Spotify access token when it has expired. The returned record always
// carries a usable Spotify access token.
func (s *Service) Authenticate(ctx context.Context, token string) (*BridgeAccessToken, error) {
	if token == "" {
		return nil, ierrors.NewInvalidTokenError("Authenticate", ErrTokenInvalid)
	}

	record, err := s.accessTokens.Get(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ierrors.NewInvalidTokenError("Authenticate", ErrTokenInvalid)
		}
		return nil, err
	}

	now := s.now().UTC()
	if record.Expired(now) {
		if err := s.accessTokens.Delete(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "failed to delete expired token", slog.Any("error", err))
		}
		return nil, ierrors.NewInvalidTokenError("Authenticate", ErrTokenExpired)
	}

	if spotify.ExpiredAt(record.ProviderTokens.ExpiresAt, now) {
		if record.ProviderTokens.RefreshToken == "" {
			return nil, ierrors.NewInvalidTokenError("Authenticate",
				fmt.Errorf("%w: provider token expired and no refresh token", ErrTokenInvalid))
		}
		if err := s.refreshProviderTokens(ctx, token, record, now); err != nil {
			return nil, err
		}
	}

	return record, nil
}

// refreshProviderTokens refreshes the Spotify tokens in place and persists
// the updated record without extending its bridge-level lifetime. Spotify
// may omit the refresh token from the response; the previous one stays.
func (s *Service) refreshProviderTokens(ctx context.Context, token string, record *BridgeAccessToken, now time.Time) error {
	tokens, err := s.provider.Refresh(ctx, record.ProviderTokens.RefreshToken)
	if err != nil {
		return ierrors.NewInvalidTokenError("Authenticate",
			fmt.Errorf("%w: provider token refresh failed: %v", ErrTokenInvalid, err))
	}

	record.ProviderTokens.AccessToken = tokens.AccessToken
	record.ProviderTokens.ExpiresAt = tokens.ExpiresAt
	if tokens.RefreshToken != "" {
		record.ProviderTokens.RefreshToken = tokens.RefreshToken
	}

	remaining := record.ExpiresAt.Sub(now)
	if err := s.accessTokens.PutRemaining(ctx, token, record, remaining); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "provider tokens refreshed",
		slog.String("client_id", record.ClientID))

	return nil
}

// buildClientRedirect appends code and state query parameters to the
// client's registered redirect URI, preserving any existing query.
func buildClientRedirect(redirectURI, code, state string) (string, error) {
	parsed, err := url.Parse(redirectURI)
	if err != nil {
		return "", ierrors.New("bridge", "CompleteProviderAuth", ierrors.ErrInternal, err)
	}

	query := parsed.Query()
	query.Set("code", code)
	query.Set("state", state)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// newOpaqueToken returns a 256-bit random URL-safe string, used for both
// bridge authorization codes and bridge access tokens.
func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
