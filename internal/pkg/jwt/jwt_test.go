package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatarra-market/internal/pkg/jwt"
)

const (
	secret = "test-secret"
	issuer = "chatarra-test"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	tok, err := jwt.GenerateAccessToken(7, "ana@test.com", "VENDEDOR", secret, issuer, 5)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(tok, secret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UsuarioID)
	assert.Equal(t, "ana@test.com", claims.Email())
	assert.Equal(t, "VENDEDOR", claims.Rol)
	assert.Equal(t, issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestAccessToken_UniqueIDs(t *testing.T) {
	a, err := jwt.GenerateAccessToken(1, "a@test.com", "ADMIN", secret, issuer, 5)
	require.NoError(t, err)
	b, err := jwt.GenerateAccessToken(1, "a@test.com", "ADMIN", secret, issuer, 5)
	require.NoError(t, err)

	ca, _ := jwt.ValidateAccessToken(a, secret)
	cb, _ := jwt.ValidateAccessToken(b, secret)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestAccessToken_Expired(t *testing.T) {
	tok, err := jwt.GenerateAccessToken(1, "a@test.com", "VENDEDOR", secret, issuer, -1)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(tok, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	tok, err := jwt.GenerateAccessToken(1, "a@test.com", "VENDEDOR", secret, issuer, 5)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(tok, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestAccessToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.Claims{
		UsuarioID: 1,
		Rol:       "ADMIN",
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "a@test.com",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(tok, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestAccessToken_Garbage(t *testing.T) {
	_, err := jwt.ValidateAccessToken("not.a.token", secret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	tok, err := jwt.GenerateRefreshToken(3, "token-id", secret, issuer, 7)
	require.NoError(t, err)

	claims, err := jwt.ValidateRefreshToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UsuarioID)
	assert.Equal(t, "token-id", claims.ID)

	// a refresh token is not an access token: it has no subject
	_, err = jwt.ValidateAccessToken(tok, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
