package bridge

import (
	"errors"
)

// Sentinel errors for bridge flow outcomes. Handlers at the HTTP edge match
// on these to choose status codes and bodies; the phrasing of the
// "invalid or expired" sentinels is deliberate — a record that never existed
// is indistinguishable from one that expired, to avoid enumeration.
var (
	// ErrInvalidParameters indicates required request parameters are missing
	// or invalid, including any PKCE method other than S256.
	ErrInvalidParameters = errors.New("missing or invalid parameters")

	// ErrClientNotFound indicates the client id is not registered.
	ErrClientNotFound = errors.New("client not found")

	// ErrRedirectURINotRegistered indicates the redirect URI is not in the
	// client's registered set.
	ErrRedirectURINotRegistered = errors.New("redirect URI not registered for this client")

	// ErrAuthRequestGone indicates the pending authorization request is
	// missing or expired.
	ErrAuthRequestGone = errors.New("invalid or expired authorization request")

	// ErrProviderStateGone indicates the provider round-trip state is
	// missing or expired.
	ErrProviderStateGone = errors.New("invalid or expired state")

	// ErrInvalidCode indicates the bridge authorization code is unknown,
	// expired, or already used.
	ErrInvalidCode = errors.New("invalid authorization code")

	// ErrClientMismatch indicates the token request's client_id or
	// redirect_uri does not match what was bound at code issuance.
	// Deliberately generic: it never reveals which field mismatched.
	ErrClientMismatch = errors.New("client mismatch")

	// ErrTokenInvalid indicates the bridge access token is unknown.
	ErrTokenInvalid = errors.New("invalid access token")

	// ErrTokenExpired indicates the bridge access token is past its
	// lifetime. The record is deleted as a side effect of detection.
	ErrTokenExpired = errors.New("access token expired")
)
