package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	accessToken := signedToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})

	got, err := TokenExpiry(accessToken)
	require.NoError(t, err)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	accessToken := signedToken(t, jwt.MapClaims{"sub": "user-1"})

	_, err := TokenExpiry(accessToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exp")
}

func TestTokenExpiry_NotAJWT(t *testing.T) {
	// Opaque токены (например из legacy deep link) не несут expiry
	_, err := TokenExpiry("opaque-token-value")
	assert.Error(t, err)
}
