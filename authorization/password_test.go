package authorization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Abcdef1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef1!", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)

	assert.True(t, VerifyPassword("Abcdef1!", hash))
	assert.False(t, VerifyPassword("abcdef1!", hash))
	assert.False(t, VerifyPassword("Abcdef1!", ""))
}

func TestHashPasswordSalts(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("Abcdef1!")
	require.NoError(t, err)
	second, err := HashPassword("Abcdef1!")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestIdentityContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := IdentityFromContext(ctx)
	assert.False(t, ok)
	assert.Equal(t, "Unauthenticated", RoleFromContext(ctx))

	user := &domain.User{Role: domain.Admin}
	ctx = WithIdentity(ctx, &Identity{User: user})

	identity, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, user, identity.User)
	assert.Equal(t, "admin", RoleFromContext(ctx))
}
