package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestService_CreateAndValidate(t *testing.T) {
	service := NewService("test-secret", time.Hour, slog.Default())
	ctx := context.Background()

	token, err := service.Create(ctx, Identity{UserID: 42, Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	id, err := service.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 42, Email: "a@x.com"}, id)
}

func TestService_TokensAreUnique(t *testing.T) {
	service := NewService("test-secret", time.Hour, slog.Default())
	ctx := context.Background()

	first, err := service.Create(ctx, Identity{UserID: 1})
	require.NoError(t, err)
	second, err := service.Create(ctx, Identity{UserID: 1})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestService_ExpiresAfterTTL(t *testing.T) {
	service := NewService("test-secret", DefaultTTL, slog.Default())
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.Create(context.Background(), Identity{UserID: 1})
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(DefaultTTL - time.Minute) }
	_, err = service.Validate(context.Background(), token)
	assert.NoError(t, err)

	service.now = func() time.Time { return issued.Add(DefaultTTL + time.Minute) }
	_, err = service.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestService_Validate_Rejects(t *testing.T) {
	service := NewService("test-secret", time.Hour, slog.Default())
	other := NewService("another-secret", time.Hour, slog.Default())

	foreign, err := other.Create(context.Background(), Identity{UserID: 1})
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: foreign},
		{name: "alg none", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Validate(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewService_DefaultTTL(t *testing.T) {
	service := NewService("s", 0, slog.Default())
	assert.Equal(t, DefaultTTL, service.ttl)
}
