package token

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every way a scanned token can be bad: wrong
// signature, wrong algorithm, malformed payload, or a jti that is not an
// integer. Callers treat all of them the same way.
var ErrInvalidToken = errors.New("invalid token")

// Manager mints and verifies the signed tokens printed into QR codes. A token
// carries exactly one claim, the code id as the JWT ID (jti), and never
// expires: codes hang on trees for the whole event, so authenticity comes
// from the signature alone.
type Manager struct {
	signingKey []byte
}

func NewManager(signingKey string) *Manager {
	return &Manager{signingKey: []byte(signingKey)}
}

// Mint creates a signed HS256 token for a code id.
func (m *Manager) Mint(codeID int) (string, error) {
	claims := jwt.RegisteredClaims{
		ID: strconv.Itoa(codeID),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a scanned token and returns the code id it was minted
// for. Any verification or parse failure is reported as ErrInvalidToken.
func (m *Manager) Verify(tokenStr string) (int, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.signingKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	codeID, err := strconv.Atoi(claims.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: jti %q is not a code id", ErrInvalidToken, claims.ID)
	}
	return codeID, nil
}
