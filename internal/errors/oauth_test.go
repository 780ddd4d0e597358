package errors

import (
	"errors"
	"testing"
)

func TestOAuthError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *OAuthError
		want string
	}{
		{
			name: "with description",
			err:  NewOAuthError(ErrorCodeInvalidGrant, "Invalid authorization code"),
			want: "invalid_grant: Invalid authorization code",
		},
		{
			name: "code only",
			err:  NewOAuthError(ErrorCodeInvalidRequest, ""),
			want: "invalid_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOAuthErrorFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantNil  bool
	}{
		{
			name:     "wrapped in domain error",
			err:      NewInvalidGrantError("ExchangeCode", "Client mismatch", errors.New("client mismatch")),
			wantCode: ErrorCodeInvalidGrant,
		},
		{
			name:     "bare oauth error",
			err:      NewOAuthError(ErrorCodeInvalidClient, "Client not found"),
			wantCode: ErrorCodeInvalidClient,
		},
		{
			name:    "plain error",
			err:     errors.New("boom"),
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := OAuthErrorFrom(tt.err)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("OAuthErrorFrom() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("OAuthErrorFrom() = nil, want error")
			}
			if got.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %q, want %q", got.ErrorCode, tt.wantCode)
			}
		})
	}
}

func TestInvalidGrantErrorCarriesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("code replayed")
	err := NewInvalidGrantError("Token", "Invalid authorization code", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the cause through the OAuth error")
	}
	if got := OAuthErrorFrom(err); got == nil || got.ErrorCode != ErrorCodeInvalidGrant {
		t.Errorf("OAuthErrorFrom() = %v, want invalid_grant", got)
	}
}

func TestConstructorsCarryKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *DomainError
		kind error
	}{
		{"invalid request", NewInvalidRequestError("Token", "Missing required parameters"), ErrBadRequest},
		{"invalid metadata", NewInvalidClientMetadataError("Register", "bad uri"), ErrBadRequest},
		{"invalid grant", NewInvalidGrantError("Token", "Invalid authorization code", nil), ErrBadRequest},
		{"invalid client", NewInvalidClientError("Token", "Client not found"), ErrBadRequest},
		{"invalid token", NewInvalidTokenError("Authenticate", ErrExpired), ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
		})
	}
}
