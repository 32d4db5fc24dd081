package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
)

// Item is one persisted cart row for an authenticated user
type Item struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
	Size      string    `gorm:"type:varchar(50)"`
	Color     string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "cart_items"
}

// Repository persists authenticated users' carts. Every write replaces
// the user's full row set so the stored cart always mirrors the last
// session that wrote it.
type Repository interface {
	// FindByUser loads all cart rows for a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Item, error)

	// ReplaceForUser deletes the user's rows and inserts the given lines
	// in one transaction
	ReplaceForUser(ctx context.Context, userID uuid.UUID, lines []Line) error
}

// GuestStore persists guest carts keyed by an opaque session token
type GuestStore interface {
	// Load returns the guest's lines, or an empty list for an unknown token
	Load(ctx context.Context, token string) ([]Line, error)

	// Save stores the guest's full line list
	Save(ctx context.Context, token string, lines []Line) error

	// Delete drops the guest cart
	Delete(ctx context.Context, token string) error
}
