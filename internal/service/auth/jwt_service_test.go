package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corepay/gateway/internal/domain"
)

const testSecret = "test-secret-0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, lifetime time.Duration) JWTService {
	t.Helper()
	svc, err := NewJWTService(testSecret, lifetime)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_Validation(t *testing.T) {
	_, err := NewJWTService("short", time.Hour)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewJWTService(testSecret, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)
	clientID := uuid.New()

	token, err := svc.GenerateToken(context.Background(), clientID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, clientID, claims.ClientID)
	assert.Equal(t, clientID.String(), claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTService_GenerateToken_RequiresClientID(t *testing.T) {
	svc := newTestService(t, time.Hour)

	_, err := svc.GenerateToken(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestJWTService_ValidateToken_Failures(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		svc := newTestService(t, time.Millisecond)
		token, err := svc.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestService(t, time.Hour)

		_, err := svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other, err := NewJWTService("another-secret-0123456789abcdef01234567", time.Hour)
		require.NoError(t, err)
		token, err := other.GenerateToken(context.Background(), uuid.New())
		require.NoError(t, err)

		svc := newTestService(t, time.Hour)
		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
