package jwt

import (
	"context"
	"testing"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/auth"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	identity := user.Identity{UserID: "u-1", EmployeeID: "e-1", Role: user.RoleEmployee}
	token, expiresAt, err := svc.GenerateAccessToken(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Positive(t, expiresAt)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	typ, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", typ)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "soon")
	_, _, err := svc.GenerateAccessToken(user.Identity{UserID: "u-1", Role: user.RoleAdmin})
	assert.Error(t, err)
}

func TestIdentityFromContext(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	ctx, err := NewContext(context.Background(), svc.JWTAuth(), user.Identity{UserID: "u-1", EmployeeID: "e-1", Role: user.RoleAdmin})
	require.NoError(t, err)

	identity, err := IdentityFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.UserID)
	assert.Equal(t, "e-1", identity.EmployeeID)
	assert.True(t, identity.IsAdmin())
}

func TestIdentityFromContext_NoEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", "15m")

	ctx, err := NewContext(context.Background(), svc.JWTAuth(), user.Identity{UserID: "u-2", Role: user.RoleAdmin})
	require.NoError(t, err)

	identity, err := IdentityFromContext(ctx)
	require.NoError(t, err)
	assert.Empty(t, identity.EmployeeID)
}

func TestIdentityFromContext_NoToken(t *testing.T) {
	_, err := IdentityFromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
