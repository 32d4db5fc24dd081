package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
)

// PasswordResetTokenTTL is how long a reset token stays valid
const PasswordResetTokenTTL = time.Hour

// PasswordResetToken is a single-use token allowing a password change
type PasswordResetToken struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// NewPasswordResetToken issues a fresh token for the user
func NewPasswordResetToken(userID uuid.UUID) (*PasswordResetToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	return &PasswordResetToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Token:      hex.EncodeToString(buf),
		ExpiresAt:  time.Now().Add(PasswordResetTokenTTL),
	}, nil
}

// IsUsable reports whether the token can still redeem a password change
func (t *PasswordResetToken) IsUsable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// MarkUsed consumes the token
func (t *PasswordResetToken) MarkUsed() {
	t.Used = true
	t.UpdatedAt = time.Now()
}
