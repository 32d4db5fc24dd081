package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/cart"
	"github.com/zanco/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser loads all cart rows for a user
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.Item, error) {
	var items []cart.Item
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceForUser deletes the user's rows and inserts the given lines in
// one transaction. The stored cart always mirrors the caller's full list.
func (r *GormCartRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, lines []cart.Line) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&cart.Item{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}

		items := make([]cart.Item, len(lines))
		for i, line := range lines {
			items[i] = cart.Item{
				BaseEntity: shared.NewBaseEntity(),
				UserID:     userID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				Size:       line.Size,
				Color:      line.Color,
			}
		}
		return tx.Create(&items).Error
	})
}

var _ cart.Repository = (*GormCartRepository)(nil)
