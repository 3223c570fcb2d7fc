package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(accessTTL, refreshTTL time.Duration) *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", accessTTL, refreshTTL)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager(time.Hour, 24*time.Hour)
	u := TokenUser{UserID: "u-1", Name: "Alice", Role: "admin"}

	tok, exp, err := m.GenerateAccessToken(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, u, claims.User)
}

func TestRefreshTokenCarriesOpaqueToken(t *testing.T) {
	m := testManager(time.Hour, 24*time.Hour)
	u := TokenUser{UserID: "u-1", Name: "Alice", Role: "user"}

	tok, _, err := m.GenerateRefreshToken(u, "opaque-refresh")
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "opaque-refresh", claims.RefreshToken)
	assert.Equal(t, u, claims.User)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := testManager(time.Hour, time.Hour)
	other := NewJWTManager("other-access", "other-refresh", time.Hour, time.Hour)

	tok, _, err := m.GenerateAccessToken(TokenUser{UserID: "u-1"})
	require.NoError(t, err)

	_, err = other.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := testManager(-time.Minute, -time.Minute)

	tok, _, err := m.GenerateAccessToken(TokenUser{UserID: "u-1"})
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestAccessTokenNotValidAsRefresh(t *testing.T) {
	m := testManager(time.Hour, time.Hour)

	tok, _, err := m.GenerateAccessToken(TokenUser{UserID: "u-1"})
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(tok)
	assert.Error(t, err)
}
