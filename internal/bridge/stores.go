package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	ierrors "spotbridge/internal/errors"
	"spotbridge/internal/storage"
)

// Key prefixes discriminating the five logical record tables in the shared
// flat key/value namespace. The prefixes never leak past this file.
const (
	keyPrefixClient        = "client:"
	keyPrefixAuthRequest   = "auth_request:"
	keyPrefixProviderState = "spotify_state:"
	keyPrefixAuthCode      = "auth_code:"
	keyPrefixAccessToken   = "mcp_token:"
)

// putRecord marshals and stores a record under prefix+key with the given TTL.
func putRecord(ctx context.Context, store storage.Store, op, prefix, key string, record any, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return ierrors.New("bridge", op, ierrors.ErrInternal, err)
	}

	if err := store.Set(ctx, prefix+key, data, ttl); err != nil {
		return ierrors.New("bridge", op, ierrors.ErrInternal, err)
	}

	return nil
}

// getRecord loads and strictly decodes a record from prefix+key.
// Absent and expired keys both surface as storage.ErrNotFound.
func getRecord(ctx context.Context, store storage.Store, op, prefix, key string, dst interface{ validate() error }) error {
	data, err := store.Get(ctx, prefix+key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return err
		}
		return ierrors.New("bridge", op, ierrors.ErrInternal, err)
	}

	if err := decodeRecord(data, dst); err != nil {
		return ierrors.New("bridge", op, ierrors.ErrInternal, err)
	}

	return nil
}

// ClientStore persists RegisteredClient records.
type ClientStore struct {
	store storage.Store
	ttl   time.Duration
}

// NewClientStore creates a client store with the given record lifetime.
func NewClientStore(store storage.Store, ttl time.Duration) *ClientStore {
	return &ClientStore{store: store, ttl: ttl}
}

// Put stores a registered client.
func (s *ClientStore) Put(ctx context.Context, client *RegisteredClient) error {
	return putRecord(ctx, s.store, "ClientStore.Put", keyPrefixClient, client.ClientID, client, s.ttl)
}

// Get returns the client, or storage.ErrNotFound.
func (s *ClientStore) Get(ctx context.Context, clientID string) (*RegisteredClient, error) {
	var client RegisteredClient
	if err := getRecord(ctx, s.store, "ClientStore.Get", keyPrefixClient, clientID, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

// Delete removes the client record.
func (s *ClientStore) Delete(ctx context.Context, clientID string) error {
	return s.store.Delete(ctx, keyPrefixClient+clientID)
}

// AuthRequestStore persists pending AuthorizationRequest records, keyed by
// the client-supplied state.
type AuthRequestStore struct {
	store storage.Store
	ttl   time.Duration
}

// NewAuthRequestStore creates an authorization request store.
func NewAuthRequestStore(store storage.Store, ttl time.Duration) *AuthRequestStore {
	return &AuthRequestStore{store: store, ttl: ttl}
}

// Put stores a pending authorization request under its state.
func (s *AuthRequestStore) Put(ctx context.Context, req *AuthorizationRequest) error {
	return putRecord(ctx, s.store, "AuthRequestStore.Put", keyPrefixAuthRequest, req.State, req, s.ttl)
}

// Get returns the pending request for a state, or storage.ErrNotFound.
func (s *AuthRequestStore) Get(ctx context.Context, state string) (*AuthorizationRequest, error) {
	var req AuthorizationRequest
	if err := getRecord(ctx, s.store, "AuthRequestStore.Get", keyPrefixAuthRequest, state, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Delete removes the pending request for a state.
func (s *AuthRequestStore) Delete(ctx context.Context, state string) error {
	return s.store.Delete(ctx, keyPrefixAuthRequest+state)
}

// ProviderStateStore persists ProviderRoundTripState records, keyed by the
// bridge-generated upstream state.
type ProviderStateStore struct {
	store storage.Store
	ttl   time.Duration
}

// NewProviderStateStore creates a round-trip state store.
func NewProviderStateStore(store storage.Store, ttl time.Duration) *ProviderStateStore {
	return &ProviderStateStore{store: store, ttl: ttl}
}

// Put stores round-trip state under the upstream state.
func (s *ProviderStateStore) Put(ctx context.Context, state *ProviderRoundTripState) error {
	return putRecord(ctx, s.store, "ProviderStateStore.Put", keyPrefixProviderState, state.State, state, s.ttl)
}

// Get returns the round-trip state, or storage.ErrNotFound.
func (s *ProviderStateStore) Get(ctx context.Context, state string) (*ProviderRoundTripState, error) {
	var rt ProviderRoundTripState
	if err := getRecord(ctx, s.store, "ProviderStateStore.Get", keyPrefixProviderState, state, &rt); err != nil {
		return nil, err
	}
	return &rt, nil
}

// Delete removes the round-trip state.
func (s *ProviderStateStore) Delete(ctx context.Context, state string) error {
	return s.store.Delete(ctx, keyPrefixProviderState+state)
}

// AuthCodeStore persists single-use BridgeAuthorizationCode records.
type AuthCodeStore struct {
	store storage.Store
	ttl   time.Duration
}

// NewAuthCodeStore creates an authorization code store.
func NewAuthCodeStore(store storage.Store, ttl time.Duration) *AuthCodeStore {
	return &AuthCodeStore{store: store, ttl: ttl}
}

// Put stores an authorization code record under the opaque code.
func (s *AuthCodeStore) Put(ctx context.Context, code string, record *BridgeAuthorizationCode) error {
	return putRecord(ctx, s.store, "AuthCodeStore.Put", keyPrefixAuthCode, code, record, s.ttl)
}

// Get returns the code record, or storage.ErrNotFound.
func (s *AuthCodeStore) Get(ctx context.Context, code string) (*BridgeAuthorizationCode, error) {
	var record BridgeAuthorizationCode
	if err := getRecord(ctx, s.store, "AuthCodeStore.Get", keyPrefixAuthCode, code, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes the code record. Used for single-use enforcement.
func (s *AuthCodeStore) Delete(ctx context.Context, code string) error {
	return s.store.Delete(ctx, keyPrefixAuthCode+code)
}

// AccessTokenStore persists BridgeAccessToken records.
type AccessTokenStore struct {
	store storage.Store
	ttl   time.Duration
}

// NewAccessTokenStore creates an access token store.
func NewAccessTokenStore(store storage.Store, ttl time.Duration) *AccessTokenStore {
	return &AccessTokenStore{store: store, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *AccessTokenStore) TTL() time.Duration {
	return s.ttl
}

// Put stores a token record under the opaque token with the full lifetime.
func (s *AccessTokenStore) Put(ctx context.Context, token string, record *BridgeAccessToken) error {
	return putRecord(ctx, s.store, "AccessTokenStore.Put", keyPrefixAccessToken, token, record, s.ttl)
}

// PutRemaining stores an updated token record, keeping the store TTL aligned
// with the record's remaining semantic lifetime.
func (s *AccessTokenStore) PutRemaining(ctx context.Context, token string, record *BridgeAccessToken, remaining time.Duration) error {
	if remaining <= 0 {
		remaining = time.Second
	}
	return putRecord(ctx, s.store, "AccessTokenStore.Put", keyPrefixAccessToken, token, record, remaining)
}

// Get returns the token record, or storage.ErrNotFound.
func (s *AccessTokenStore) Get(ctx context.Context, token string) (*BridgeAccessToken, error) {
	var record BridgeAccessToken
	if err := getRecord(ctx, s.store, "AccessTokenStore.Get", keyPrefixAccessToken, token, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes the token record.
func (s *AccessTokenStore) Delete(ctx context.Context, token string) error {
	return s.store.Delete(ctx, keyPrefixAccessToken+token)
}
