package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	ierrors "spotbridge/internal/errors"
	pkgoauth "spotbridge/pkg/oauth"
)

// ResourceKind identifies the Spotify Web API resource collections the
// bridge exposes through its tool layer.
type ResourceKind string

// Resource kinds supported by GetResource.
const (
	ResourceTrack    ResourceKind = "tracks"
	ResourceAlbum    ResourceKind = "albums"
	ResourceArtist   ResourceKind = "artists"
	ResourcePlaylist ResourceKind = "playlists"
)

// validResourceKinds is the allow-list for GetResource.
var validResourceKinds = map[ResourceKind]bool{
	ResourceTrack:    true,
	ResourceAlbum:    true,
	ResourceArtist:   true,
	ResourcePlaylist: true,
}

// APIClient is an authenticated Spotify Web API client, reconstructed
// per-request from the provider tokens stored with a bridge access token.
type APIClient struct {
	baseURL     string
	accessToken string
	httpClient  HTTPDoer
}

// APIClientOption configures an APIClient.
type APIClientOption func(*APIClient)

// WithAPIHTTPClient sets a custom HTTP client.
func WithAPIHTTPClient(client HTTPDoer) APIClientOption {
	return func(c *APIClient) {
		c.httpClient = client
	}
}

// NewAPIClient creates a Web API client that authenticates with the given
// Spotify access token.
func NewAPIClient(baseURL, accessToken string, opts ...APIClientOption) *APIClient {
	c := &APIClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetResource fetches a single resource by id (e.g., a track or album).
// The response body is returned as raw JSON for the tool layer to relay.
func (c *APIClient) GetResource(ctx context.Context, kind ResourceKind, id string) (json.RawMessage, error) {
	if !validResourceKinds[kind] {
		return nil, ierrors.New("spotify", "GetResource", ierrors.ErrBadRequest,
			fmt.Errorf("unsupported resource kind %q", kind))
	}
	if id == "" {
		return nil, ierrors.New("spotify", "GetResource", ierrors.ErrBadRequest,
			fmt.Errorf("resource id is required"))
	}

	return c.get(ctx, "GetResource", fmt.Sprintf("%s/%s/%s", c.baseURL, kind, url.PathEscape(id)))
}

// Search queries the Spotify catalog. kind is a comma-separated list of
// item types per the Web API (e.g., "track" or "track,album").
func (c *APIClient) Search(ctx context.Context, query, kind string, limit int) (json.RawMessage, error) {
	if query == "" {
		return nil, ierrors.New("spotify", "Search", ierrors.ErrBadRequest, fmt.Errorf("query is required"))
	}
	if kind == "" {
		kind = "track"
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	params := url.Values{
		"q":     {query},
		"type":  {kind},
		"limit": {strconv.Itoa(limit)},
	}

	return c.get(ctx, "Search", c.baseURL+"/search?"+params.Encode())
}

// get performs an authenticated GET and returns the raw JSON body.
func (c *APIClient) get(ctx context.Context, op, requestURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, ierrors.New("spotify", op, ierrors.ErrInternal, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set(pkgoauth.HeaderAuthorization, pkgoauth.BearerToken+" "+c.accessToken)
	req.Header.Set("Accept", pkgoauth.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream, fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream,
			fmt.Errorf("api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))).
			WithContext("status_code", resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, ierrors.New("spotify", op, ierrors.ErrUpstream, fmt.Errorf("api returned invalid JSON"))
	}

	return json.RawMessage(body), nil
}
