package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierrors "spotbridge/internal/errors"
)

func TestAPIClient_GetResource(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sp-at", r.Header.Get("Authorization"))
		assert.Equal(t, "/tracks/track-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"track-1","name":"Song"}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "sp-at")

	body, err := client.GetResource(context.Background(), ResourceTrack, "track-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"track-1","name":"Song"}`, string(body))
}

func TestAPIClient_GetResource_Validation(t *testing.T) {
	t.Parallel()

	client := NewAPIClient("https://api.spotify.com/v1", "sp-at")

	_, err := client.GetResource(context.Background(), ResourceKind("bogus"), "id")
	assert.ErrorIs(t, err, ierrors.ErrBadRequest)

	_, err = client.GetResource(context.Background(), ResourceTrack, "")
	assert.ErrorIs(t, err, ierrors.ErrBadRequest)
}

func TestAPIClient_GetResource_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"status":401,"message":"The access token expired"}}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "stale")

	_, err := client.GetResource(context.Background(), ResourceAlbum, "album-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ierrors.ErrUpstream)
	assert.Contains(t, err.Error(), "401")
}

func TestAPIClient_Search(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "robyn", q.Get("q"))
		assert.Equal(t, "track", q.Get("type"))
		assert.Equal(t, "10", q.Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tracks":{"items":[]}}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "sp-at")

	// kind defaults to "track", limit defaults to 10.
	body, err := client.Search(context.Background(), "robyn", "", 0)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tracks":{"items":[]}}`, string(body))
}

func TestAPIClient_Search_RequiresQuery(t *testing.T) {
	t.Parallel()

	client := NewAPIClient("https://api.spotify.com/v1", "sp-at")

	_, err := client.Search(context.Background(), "", "track", 10)
	assert.ErrorIs(t, err, ierrors.ErrBadRequest)
}
