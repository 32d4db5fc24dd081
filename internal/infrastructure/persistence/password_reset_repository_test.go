package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zanco/backend/internal/domain/identity"
	"github.com/zanco/backend/internal/domain/shared"
)

func newPasswordResetRepository(t *testing.T) *GormPasswordResetRepository {
	return NewGormPasswordResetRepository(newTestDB(t, &identity.PasswordResetToken{}))
}

func TestGormPasswordResetRepository_SaveAndFindByToken(t *testing.T) {
	repo := newPasswordResetRepository(t)
	ctx := context.Background()

	token, err := identity.NewPasswordResetToken(uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, token))

	found, err := repo.FindByToken(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, token.UserID, found.UserID)
	assert.False(t, found.Used)

	_, err = repo.FindByToken(ctx, "deadbeef")
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormPasswordResetRepository_MarkUsedPersists(t *testing.T) {
	repo := newPasswordResetRepository(t)
	ctx := context.Background()

	token, err := identity.NewPasswordResetToken(uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, token))

	token.MarkUsed()
	require.NoError(t, repo.Save(ctx, token))

	found, err := repo.FindByToken(ctx, token.Token)
	require.NoError(t, err)
	assert.True(t, found.Used)
	assert.False(t, found.IsUsable(time.Now()))
}

func TestGormPasswordResetRepository_DeleteExpired(t *testing.T) {
	repo := newPasswordResetRepository(t)
	ctx := context.Background()

	expired, err := identity.NewPasswordResetToken(uuid.New())
	require.NoError(t, err)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, repo.Save(ctx, expired))

	fresh, err := identity.NewPasswordResetToken(uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, fresh))

	require.NoError(t, repo.DeleteExpired(ctx))

	_, err = repo.FindByToken(ctx, expired.Token)
	assert.Equal(t, shared.ErrNotFound, err)

	_, err = repo.FindByToken(ctx, fresh.Token)
	assert.NoError(t, err)
}
