package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "1h", "24h")
}

func TestGenerateAccessTokenCarriesClaims(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "worker@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	assert.Equal(t, "user-1", userID)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestService()

	refreshToken, _, err := svc.GenerateRefreshToken("user-2")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-2", userID)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestService()

	accessToken, _, err := svc.GenerateAccessToken("user-3", "worker@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestValidateRefreshTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateRefreshToken("not.a.token")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()

	refreshToken, _, err := svc.GenerateRefreshToken("user-4")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(refreshToken))
	svc.RevokeToken(refreshToken)
	assert.True(t, svc.IsTokenRevoked(refreshToken))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	cookie := svc.RefreshTokenCookie("token-value", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, time.Unix(expiresAt, 0), cookie.Expires)
}
