package jwt

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	secretKey := "test-secret-key"
	service := NewService(secretKey)

	assert.NotNil(t, service)
	assert.Equal(t, []byte(secretKey), service.secretKey)
	assert.Equal(t, DefaultTTL, service.ttl)
}

func TestGenerateAndValidateToken_RoundTrip(t *testing.T) {
	service := NewService("test-secret-key")

	token, err := service.GenerateToken("user-456", PurposeResetEmail, "new@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
	assert.Equal(t, PurposeResetEmail, claims.Purpose)
	assert.Equal(t, "new@example.com", claims.Value)
	assert.True(t, time.Now().Before(claims.ExpiresAt.Time))
}

func TestGenerateToken_UnknownPurpose(t *testing.T) {
	service := NewService("test-secret-key")

	_, err := service.GenerateToken("user-1", Purpose("delete_everything"), "")
	assert.Error(t, err)
}

func TestGenerateToken_EmptySecret(t *testing.T) {
	service := NewService("")

	_, err := service.GenerateToken("user-1", PurposeAPI, "")
	assert.True(t, errors.Is(err, ErrNoSecret))
}

func TestValidateToken_InvalidToken(t *testing.T) {
	service := NewService("test-secret-key")

	_, err := service.ValidateToken("invalid-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_EmptyToken(t *testing.T) {
	service := NewService("test-secret-key")

	_, err := service.ValidateToken("")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service1 := NewService("secret-key-1")
	service2 := NewService("secret-key-2")

	token, err := service1.GenerateToken("user-123", PurposeAPI, "")
	require.NoError(t, err)

	_, err = service2.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestValidateToken_ExpiredAfterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	service := NewService("test-secret-key", WithClock(clock), WithTTL(time.Hour))

	token, err := service.GenerateToken("user-123", PurposeConfirm, "")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.NoError(t, err)

	now = now.Add(time.Hour + time.Second)
	_, err = service.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestGenerateTokenWithTTL(t *testing.T) {
	service := NewService("test-secret-key")

	token, err := service.GenerateTokenWithTTL("user-1", PurposeAPI, "", -time.Second)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestValidateToken_TamperedPayload(t *testing.T) {
	service := NewService("test-secret-key")

	token, err := service.GenerateToken("user-1", PurposeAPI, "")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"user_id":"user-2","use_for":"api","exp":4102444800}`))

	_, err = service.ValidateToken(strings.Join(parts, "."))
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestPurpose_Valid(t *testing.T) {
	for _, p := range []Purpose{PurposeAPI, PurposeConfirm, PurposeChangePassword, PurposeResetPassword, PurposeResetEmail} {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Purpose("").Valid())
	assert.False(t, Purpose("API").Valid())
}
