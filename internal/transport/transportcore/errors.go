package transportcore

import (
	"errors"
)

// Sentinel errors for transport operations.
// These are used for error identification and testing.
var (
	// ErrMissingToken indicates the Authorization header is missing or empty.
	ErrMissingToken = errors.New("missing authorization token")

	// ErrInvalidToken indicates the token format is invalid (not a Bearer token).
	ErrInvalidToken = errors.New("invalid authorization token")

	// ErrServerClosed indicates the server has been closed and cannot accept requests.
	ErrServerClosed = errors.New("server closed")
)
