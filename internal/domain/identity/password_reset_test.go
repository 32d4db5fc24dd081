package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordResetToken(t *testing.T) {
	userID := uuid.New()
	token, err := NewPasswordResetToken(userID)
	require.NoError(t, err)

	assert.Equal(t, userID, token.UserID)
	assert.Len(t, token.Token, 64)
	assert.False(t, token.Used)
	assert.WithinDuration(t, time.Now().Add(PasswordResetTokenTTL), token.ExpiresAt, 2*time.Second)

	other, err := NewPasswordResetToken(userID)
	require.NoError(t, err)
	assert.NotEqual(t, token.Token, other.Token)
}

func TestPasswordResetTokenUsable(t *testing.T) {
	token, err := NewPasswordResetToken(uuid.New())
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, token.IsUsable(now))

	t.Run("expired", func(t *testing.T) {
		assert.False(t, token.IsUsable(now.Add(PasswordResetTokenTTL+time.Minute)))
	})

	t.Run("used", func(t *testing.T) {
		token.MarkUsed()
		assert.False(t, token.IsUsable(now))
	})
}
