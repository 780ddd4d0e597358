package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecord_Strict(t *testing.T) {
	valid := []byte(`{"client_id":"c1","redirect_uris":["https://x.example.com/cb"],"created_at":"2026-01-01T00:00:00Z"}`)

	var client RegisteredClient
	require.NoError(t, decodeRecord(valid, &client))
	assert.Equal(t, "c1", client.ClientID)

	tests := []struct {
		name string
		data []byte
	}{
		{"unknown field", []byte(`{"client_id":"c1","redirect_uris":["u"],"surprise":true}`)},
		{"missing client_id", []byte(`{"redirect_uris":["u"]}`)},
		{"missing redirect_uris", []byte(`{"client_id":"c1"}`)},
		{"not json", []byte(`garbage`)},
		{"empty", []byte(``)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out RegisteredClient
			assert.Error(t, decodeRecord(tt.data, &out))
		})
	}
}

func TestAuthorizationRequest_Validate(t *testing.T) {
	req := AuthorizationRequest{
		ClientID:      "c1",
		RedirectURI:   "https://x.example.com/cb",
		CodeChallenge: "ch",
		State:         "s",
	}
	require.NoError(t, req.validate())

	incomplete := req
	incomplete.CodeChallenge = ""
	assert.Error(t, incomplete.validate())
}

func TestBridgeAccessToken_Expired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	token := BridgeAccessToken{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, token.Expired(now))
	assert.False(t, token.Expired(now.Add(time.Hour)))
	assert.True(t, token.Expired(now.Add(time.Hour+time.Second)))
}
