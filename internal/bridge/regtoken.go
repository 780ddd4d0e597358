package bridge

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	ierrors "spotbridge/internal/errors"
)

const regTokenIssuer = "spotbridge"

// RegistrationTokenIssuer mints and validates the registration access
// tokens that guard the client configuration endpoint. Tokens are HS256
// JWTs bound to a single client id and do not expire; deleting the client
// record is the revocation mechanism.
type RegistrationTokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewRegistrationTokenIssuer creates an issuer with the given HMAC secret.
func NewRegistrationTokenIssuer(secret string) (*RegistrationTokenIssuer, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("registration token secret must be at least 32 bytes")
	}
	return &RegistrationTokenIssuer{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Mint returns a registration access token for the given client id.
func (i *RegistrationTokenIssuer) Mint(clientID string) (string, error) {
	if clientID == "" {
		return "", fmt.Errorf("client id cannot be empty")
	}

	claims := jwt.RegisteredClaims{
		Issuer:   regTokenIssuer,
		Subject:  clientID,
		IssuedAt: jwt.NewNumericDate(i.now().UTC()),
		ID:       uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign registration token: %w", err)
	}

	return signed, nil
}

// Validate verifies the token signature and claims and checks that the
// token is bound to the expected client id.
func (i *RegistrationTokenIssuer) Validate(tokenString, clientID string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(regTokenIssuer),
	)
	if err != nil {
		return ierrors.New("bridge", "Validate", ierrors.ErrUnauthorized,
			fmt.Errorf("invalid registration token: %w", err))
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != clientID {
		return ierrors.New("bridge", "Validate", ierrors.ErrUnauthorized,
			fmt.Errorf("registration token not issued for this client"))
	}

	return nil
}
