package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	ierrors "spotbridge/internal/errors"
	"spotbridge/internal/storage"
	pkgoauth "spotbridge/pkg/oauth"
)

// ClientRegistrationRequest is the RFC 7591 registration request body.
type ClientRegistrationRequest struct {
	RedirectURIs            []string `json:"redirect_uris"`
	ClientName              string   `json:"client_name,omitempty"`
	GrantTypes              []string `json:"grant_types,omitempty"`
	ResponseTypes           []string `json:"response_types,omitempty"`
	TokenEndpointAuthMethod string   `json:"token_endpoint_auth_method,omitempty"`
}

// Registry validates and persists public OAuth client records.
type Registry struct {
	clients *ClientStore
}

// NewRegistry creates a client registry over the given client store.
func NewRegistry(clients *ClientStore) *Registry {
	if clients == nil {
		panic("clients cannot be nil")
	}
	return &Registry{clients: clients}
}

// RegisterClient validates the registration request, generates a client id,
// and persists the client record. Validation is schema-level only; redirect
// targets are never probed. Supplied grant_types, response_types, and
// token_endpoint_auth_method are registered as given once checked against
// the supported sets; defaults apply only when a field is omitted.
func (r *Registry) RegisterClient(ctx context.Context, req *ClientRegistrationRequest) (*RegisteredClient, error) {
	if err := validateRedirectURIs(req.RedirectURIs); err != nil {
		return nil, err
	}

	grantTypes, err := defaultedMetadata(req.GrantTypes, "grant_types",
		pkgoauth.GrantTypeAuthorizationCode)
	if err != nil {
		return nil, err
	}
	responseTypes, err := defaultedMetadata(req.ResponseTypes, "response_types",
		pkgoauth.ResponseTypeCode)
	if err != nil {
		return nil, err
	}
	authMethod := req.TokenEndpointAuthMethod
	if authMethod == "" {
		authMethod = pkgoauth.TokenEndpointAuthNone
	} else if authMethod != pkgoauth.TokenEndpointAuthNone {
		return nil, ierrors.NewInvalidClientMetadataError("RegisterClient",
			fmt.Sprintf("Unsupported token_endpoint_auth_method: %s", authMethod))
	}

	client := &RegisteredClient{
		ClientID:                uuid.NewString(),
		ClientName:              req.ClientName,
		RedirectURIs:            req.RedirectURIs,
		GrantTypes:              grantTypes,
		ResponseTypes:           responseTypes,
		TokenEndpointAuthMethod: authMethod,
		CreatedAt:               time.Now().UTC(),
	}

	if err := r.clients.Put(ctx, client); err != nil {
		return nil, ierrors.New("registry", "RegisterClient", ierrors.ErrInternal,
			fmt.Errorf("failed to store client: %w", err))
	}

	return client, nil
}

// GetClient returns the client record, or nil (without error) when the
// client does not exist. Errors indicate store failure or corrupt data.
func (r *Registry) GetClient(ctx context.Context, clientID string) (*RegisteredClient, error) {
	client, err := r.clients.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

// DeleteClient removes the client record. Deletion is this system's only
// revocation primitive.
func (r *Registry) DeleteClient(ctx context.Context, clientID string) error {
	return r.clients.Delete(ctx, clientID)
}

// ValidateRedirectURI succeeds iff uri is exactly one of the client's
// registered redirect URIs. Comparison is string equality; no normalization.
func (r *Registry) ValidateRedirectURI(client *RegisteredClient, uri string) error {
	for _, registered := range client.RedirectURIs {
		if registered == uri {
			return nil
		}
	}
	return ierrors.New("registry", "ValidateRedirectURI", ierrors.ErrBadRequest,
		ErrRedirectURINotRegistered)
}

// defaultedMetadata validates a requested metadata list against the single
// supported value, returning the default when the list is omitted.
func defaultedMetadata(requested []string, field, supported string) ([]string, error) {
	if len(requested) == 0 {
		return []string{supported}, nil
	}
	for _, v := range requested {
		if v != supported {
			return nil, ierrors.NewInvalidClientMetadataError("RegisterClient",
				fmt.Sprintf("Unsupported %s: %s", field, v))
		}
	}
	return requested, nil
}

// validateRedirectURIs enforces the redirect URI schema rules: every URI
// must parse, carry no fragment, and use https (or http on localhost).
func validateRedirectURIs(uris []string) error {
	if len(uris) == 0 {
		return ierrors.NewInvalidClientMetadataError("RegisterClient",
			"At least one redirect_uri is required")
	}

	for _, raw := range uris {
		parsed, err := url.Parse(raw)
		if err != nil || !parsed.IsAbs() {
			return ierrors.NewInvalidClientMetadataError("RegisterClient",
				fmt.Sprintf("Invalid redirect_uri: %s", raw))
		}

		if parsed.Fragment != "" {
			return ierrors.NewInvalidClientMetadataError("RegisterClient",
				fmt.Sprintf("redirect_uri must not contain a fragment: %s", raw))
		}

		switch parsed.Scheme {
		case "https":
		case "http":
			if !isLocalhostHost(parsed.Host) {
				return ierrors.NewInvalidClientMetadataError("RegisterClient",
					fmt.Sprintf("redirect_uri must use https for non-localhost hosts: %s", raw))
			}
		default:
			return ierrors.NewInvalidClientMetadataError("RegisterClient",
				fmt.Sprintf("redirect_uri must use https or localhost http: %s", raw))
		}
	}

	return nil
}

// isLocalhostHost reports whether host (optionally host:port) is localhost.
func isLocalhostHost(host string) bool {
	hostname := host
	if parsed, err := url.Parse("//" + host); err == nil && parsed.Hostname() != "" {
		hostname = parsed.Hostname()
	}
	return hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"
}
