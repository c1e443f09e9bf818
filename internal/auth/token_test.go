package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService(TokenConfig{
		SigningKey: "test-signing-key-0123456789abcdef",
		Issuer:     "https://api.cargoscope.test",
		Audience:   "cargoscope-api",
	})
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService()

	token, expiresAt, err := svc.Generate("ops-dashboard")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), expiresAt, 5*time.Second)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-dashboard", subject)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := newTestTokenService()

	_, err := svc.Validate("not.a.token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenService_RejectsWrongKey(t *testing.T) {
	svc := newTestTokenService()
	other := NewTokenService(TokenConfig{
		SigningKey: "a-completely-different-signing-key",
		Issuer:     "https://api.cargoscope.test",
		Audience:   "cargoscope-api",
	})

	token, _, err := other.Generate("ops-dashboard")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenService_RejectsWrongAudience(t *testing.T) {
	svc := newTestTokenService()
	other := NewTokenService(TokenConfig{
		SigningKey: "test-signing-key-0123456789abcdef",
		Issuer:     "https://api.cargoscope.test",
		Audience:   "some-other-service",
	})

	token, _, err := other.Generate("ops-dashboard")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := newTestTokenService()

	now := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://api.cargoscope.test",
			Subject:   "ops-dashboard",
			Audience:  jwt.ClaimStrings{"cargoscope-api"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key-0123456789abcdef"))
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}
