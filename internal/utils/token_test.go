package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("user-1", "secret", time.Hour, "caravel-test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "caravel-test", claims.Issuer)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	token, err := NewAccessToken("user-1", "secret", time.Hour, "caravel-test")
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "other-secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAccessTokenExpired(t *testing.T) {
	token, err := NewAccessToken("user-1", "secret", -time.Minute, "caravel-test")
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("opening balance")
	require.NoError(t, err)
	assert.True(t, VerifyPassword("opening balance", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}
