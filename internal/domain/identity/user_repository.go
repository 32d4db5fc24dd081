package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (lowercased)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll lists users matching the filter (admin view)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// Delete deletes a user
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PasswordResetRepository defines the interface for reset token persistence
type PasswordResetRepository interface {
	// FindByToken finds a reset token by its value
	FindByToken(ctx context.Context, token string) (*PasswordResetToken, error)

	// Save creates or updates a reset token
	Save(ctx context.Context, token *PasswordResetToken) error

	// DeleteExpired removes tokens past their expiry
	DeleteExpired(ctx context.Context) error
}
