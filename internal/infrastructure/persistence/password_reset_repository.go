package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/zanco/backend/internal/domain/identity"
	"github.com/zanco/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPasswordResetRepository implements identity.PasswordResetRepository using GORM
type GormPasswordResetRepository struct {
	db *gorm.DB
}

// NewGormPasswordResetRepository creates a new GormPasswordResetRepository
func NewGormPasswordResetRepository(db *gorm.DB) *GormPasswordResetRepository {
	return &GormPasswordResetRepository{db: db}
}

// FindByToken finds a reset token by its value
func (r *GormPasswordResetRepository) FindByToken(ctx context.Context, token string) (*identity.PasswordResetToken, error) {
	var t identity.PasswordResetToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save creates or updates a reset token
func (r *GormPasswordResetRepository) Save(ctx context.Context, token *identity.PasswordResetToken) error {
	return r.db.WithContext(ctx).Save(token).Error
}

// DeleteExpired removes tokens past their expiry
func (r *GormPasswordResetRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&identity.PasswordResetToken{}).Error
}

var _ identity.PasswordResetRepository = (*GormPasswordResetRepository)(nil)
