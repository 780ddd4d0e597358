// Package storage provides the TTL-capable key/value store backing the
// bridge's cross-request state. The bridge only requires point get, point
// set with an optional TTL, and point delete, with read-after-write
// consistency per key; no listing or cross-key transactions.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the key does not exist or has expired.
// The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("storage: key not found")

// Store is the key/value interface shared by all record stores.
type Store interface {
	// Get returns the value stored under key.
	// Returns ErrNotFound if the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
