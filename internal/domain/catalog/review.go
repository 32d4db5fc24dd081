package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
)

// Review represents a customer review of a product
// A user may leave at most one review per product
type Review struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:2"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:1"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "product_reviews"
}

// NewReview creates a new review
func NewReview(productID, userID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		Rating:            rating,
		Comment:           strings.TrimSpace(comment),
	}, nil
}

// ReviewWithAuthor pairs a review with the reviewer's display name for listings
type ReviewWithAuthor struct {
	Review
	AuthorName string `json:"author_name"`
}
