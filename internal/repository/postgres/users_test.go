package postgres

import (
	"context"
	"testing"

	"github.com/railgo/railgo/internal/domain"
	"github.com/railgo/railgo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndGetByEmail(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	u := insertUser(t, store)
	require.False(t, u.CreatedAt.IsZero())

	got, err := store.Users().GetByEmail(ctx, u.Email)
	require.NoError(t, err)

	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.Equal(t, u.AccountNumber, got.AccountNumber)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	u := insertUser(t, store)

	dup := &domain.User{
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		AccountNumber: "ACC9999",
	}
	err := store.Users().Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUserGetByEmailNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Users().GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
