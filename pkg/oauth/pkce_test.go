package oauth

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestGenerateCodeVerifier(t *testing.T) {
	t.Parallel()

	v1 := GenerateCodeVerifier()
	v2 := GenerateCodeVerifier()

	// 32 bytes base64url without padding is 43 characters.
	if len(v1) != 43 {
		t.Errorf("verifier length = %d, want 43", len(v1))
	}
	if v1 == v2 {
		t.Error("two verifiers are identical")
	}
	if _, err := base64.RawURLEncoding.DecodeString(v1); err != nil {
		t.Errorf("verifier is not base64url: %v", err)
	}
}

func TestCodeChallengeS256(t *testing.T) {
	t.Parallel()

	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	sum := sha256.Sum256([]byte(verifier))
	want := base64.RawURLEncoding.EncodeToString(sum[:])

	if got := CodeChallengeS256(verifier); got != want {
		t.Errorf("CodeChallengeS256() = %q, want %q", got, want)
	}

	// Deterministic function of its input.
	if CodeChallengeS256(verifier) != CodeChallengeS256(verifier) {
		t.Error("challenge is not deterministic")
	}
}
