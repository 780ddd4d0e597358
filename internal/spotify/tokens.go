// Package spotify implements the upstream OAuth 2.0 client for Spotify's
// authorization server and a thin bearer client for the Spotify Web API.
//
// The bridge treats Spotify as an opaque external collaborator: the auth
// client performs the authorization-URL, code-exchange, and refresh legs of
// the upstream flow, and the API client issues authenticated resource
// lookups. No retries are performed here; retry policy belongs to callers.
package spotify

import (
	"time"
)

// tokenExpiryMargin is the margin applied when checking token expiration.
// This accounts for clock skew between systems and network latency.
const tokenExpiryMargin = 30 * time.Second

// Tokens are the credentials obtained from Spotify's token endpoint.
type Tokens struct {
	// AccessToken is the Spotify access token.
	AccessToken string

	// RefreshToken is the Spotify refresh token, if one was issued.
	// Spotify may omit it on refresh responses, in which case the caller
	// must retain the previous one.
	RefreshToken string

	// ExpiresAt is when the access token expires.
	ExpiresAt time.Time
}

// Expired reports whether the access token is past (or within the clock-skew
// margin of) its expiry.
func (t *Tokens) Expired() bool {
	return ExpiredAt(t.ExpiresAt, time.Now())
}

// ExpiredAt reports whether a token expiring at expiresAt is past (or within
// the clock-skew margin of) its expiry when observed at now. A zero
// expiresAt never expires. This is the single expiry predicate for Spotify
// access tokens, wherever their expiry is stored.
func ExpiredAt(expiresAt, now time.Time) bool {
	if expiresAt.IsZero() {
		return false
	}
	return now.After(expiresAt.Add(-tokenExpiryMargin))
}
