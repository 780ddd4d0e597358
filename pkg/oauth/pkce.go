package oauth

import (
	"golang.org/x/oauth2"
)

// GenerateCodeVerifier generates a cryptographically random PKCE
// code_verifier per RFC 7636 Section 4.1. The verifier is 43 characters
// (32 random bytes, base64url encoded without padding).
//
// It delegates to oauth2.GenerateVerifier, which panics on crypto/rand
// read failure; every call is independent and unpredictable.
func GenerateCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// CodeChallengeS256 computes the code_challenge for a code_verifier using
// the S256 method per RFC 7636 Section 4.2:
// code_challenge = BASE64URL(SHA256(code_verifier)).
func CodeChallengeS256(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}
