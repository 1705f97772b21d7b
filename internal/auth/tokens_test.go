package auth

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandexapp/fandex-server/internal/domain"
)

func newTestTokenService(t *testing.T, accessDuration time.Duration) *TokenService {
	t.Helper()

	key := make([]byte, keyBytesSize)
	_, err := rand.Read(key)
	require.NoError(t, err)

	svc, err := NewTokenService(hex.EncodeToString(key), accessDuration, 720*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"too short", "abcd"},
		{"not hex", "zz" + hex.EncodeToString(make([]byte, 31))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenService(tt.key, 15*time.Minute, 720*time.Hour)
			assert.Error(t, err)
		})
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute)

	user := &domain.User{Email: "ana@example.com"}
	user.ID = "user-abc123"

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-abc123", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "user-abc123", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc := newTestTokenService(t, -1*time.Minute)

	user := &domain.User{Email: "ana@example.com"}
	user.ID = "user-abc123"

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc1 := newTestTokenService(t, 15*time.Minute)
	svc2 := newTestTokenService(t, 15*time.Minute)

	user := &domain.User{Email: "ana@example.com"}
	user.ID = "user-abc123"

	token, err := svc1.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc2.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshToken_HashStable(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute)

	token, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Hashing is deterministic, and different tokens hash differently.
	assert.Equal(t, HashRefreshToken(token), HashRefreshToken(token))

	other, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, HashRefreshToken(token), HashRefreshToken(other))
}
