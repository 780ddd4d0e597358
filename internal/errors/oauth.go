package errors

import (
	"errors"
	"fmt"
)

// OAuth 2.0 error codes as defined in RFC 6749 Section 5.2, RFC 7591
// Section 3.2.2, and RFC 6750 Section 3.1.
const (
	// ErrorCodeInvalidRequest indicates the request is malformed or missing
	// required parameters.
	ErrorCodeInvalidRequest = "invalid_request"

	// ErrorCodeInvalidClient indicates client authentication failed or the
	// client is unknown.
	ErrorCodeInvalidClient = "invalid_client"

	// ErrorCodeInvalidGrant indicates the authorization code is invalid,
	// expired, already used, or bound to a different client.
	ErrorCodeInvalidGrant = "invalid_grant"

	// ErrorCodeInvalidClientMetadata indicates a registration request
	// contained invalid client metadata (RFC 7591).
	ErrorCodeInvalidClientMetadata = "invalid_client_metadata"

	// ErrorCodeInvalidToken indicates a presented bearer token is invalid,
	// expired, or revoked (RFC 6750).
	ErrorCodeInvalidToken = "invalid_token"

	// ErrorCodeAccessDenied indicates the resource owner denied the request.
	ErrorCodeAccessDenied = "access_denied"

	// ErrorCodeServerError indicates an internal failure at the
	// authorization server.
	ErrorCodeServerError = "server_error"

	// ErrorCodeUnsupportedGrantType indicates the grant type is not
	// supported by the token endpoint.
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
)

// OAuthError represents an RFC 6749 compliant OAuth error.
// It carries the wire-level error code alongside a human-readable
// description, and is translated to a JSON body or a redirect query
// parameter at the HTTP edge.
type OAuthError struct {
	// ErrorCode is the OAuth error code (e.g., "invalid_grant").
	ErrorCode string

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string

	// Err optionally carries the underlying sentinel behind this OAuth
	// error so callers can match with errors.Is. Never serialized.
	Err error
}

// Error implements the error interface.
func (e *OAuthError) Error() string {
	if e.ErrorDescription != "" {
		return fmt.Sprintf("%s: %s", e.ErrorCode, e.ErrorDescription)
	}
	return e.ErrorCode
}

// Unwrap returns the underlying sentinel, if any.
func (e *OAuthError) Unwrap() error {
	return e.Err
}

// NewOAuthError creates a new OAuthError with the given error code and description.
func NewOAuthError(errorCode, errorDescription string) *OAuthError {
	return &OAuthError{
		ErrorCode:        errorCode,
		ErrorDescription: errorDescription,
	}
}

// Domain identifier for bridge OAuth errors.
const domainBridge = "bridge"

// NewInvalidRequestError creates a DomainError for a malformed request.
func NewInvalidRequestError(op, description string) *DomainError {
	return New(domainBridge, op, ErrBadRequest, NewOAuthError(ErrorCodeInvalidRequest, description)).
		WithContext("oauth_error", ErrorCodeInvalidRequest)
}

// NewInvalidClientMetadataError creates a DomainError for registration
// metadata that failed validation.
func NewInvalidClientMetadataError(op, description string) *DomainError {
	return New(domainBridge, op, ErrBadRequest, NewOAuthError(ErrorCodeInvalidClientMetadata, description)).
		WithContext("oauth_error", ErrorCodeInvalidClientMetadata)
}

// NewInvalidGrantError creates a DomainError for an invalid, expired,
// replayed, or mismatched authorization code. cause carries the sentinel
// identifying which rule was violated.
func NewInvalidGrantError(op, description string, cause error) *DomainError {
	oe := NewOAuthError(ErrorCodeInvalidGrant, description)
	oe.Err = cause
	return New(domainBridge, op, ErrBadRequest, oe).
		WithContext("oauth_error", ErrorCodeInvalidGrant)
}

// NewInvalidClientError creates a DomainError for an unknown client.
func NewInvalidClientError(op, description string) *DomainError {
	return New(domainBridge, op, ErrBadRequest, NewOAuthError(ErrorCodeInvalidClient, description)).
		WithContext("oauth_error", ErrorCodeInvalidClient)
}

// NewInvalidTokenError creates a DomainError for a rejected bearer token.
func NewInvalidTokenError(op string, err error) *DomainError {
	return New(domainBridge, op, ErrUnauthorized, err).
		WithContext("oauth_error", ErrorCodeInvalidToken)
}

// OAuthErrorFrom extracts the OAuthError from an error chain.
// Returns nil if the chain does not contain one.
func OAuthErrorFrom(err error) *OAuthError {
	var oe *OAuthError
	if errors.As(err, &oe) {
		return oe
	}
	return nil
}
