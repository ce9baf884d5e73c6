package security_test

import (
	"testing"
	"time"

	"taskhub/internal/common/security"
	"taskhub/internal/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
	m.Run()
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := security.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	require.True(t, security.CheckPasswordHash("secret1", hash))
	require.False(t, security.CheckPasswordHash("secret2", hash))
}

func TestGenerateToken_CarriesClaims(t *testing.T) {
	tokenString, err := security.GenerateToken("user-123", "user")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "user-123", claims["user_id"])
	require.Equal(t, "user", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestGetUserIDFromClaims(t *testing.T) {
	id, err := security.GetUserIDFromClaims(jwt.MapClaims{"user_id": "abc"})
	require.NoError(t, err)
	require.Equal(t, "abc", id)

	_, err = security.GetUserIDFromClaims(jwt.MapClaims{})
	require.Error(t, err)

	_, err = security.GetUserIDFromClaims(jwt.MapClaims{"user_id": 42})
	require.Error(t, err)
}
