package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
)

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByProduct lists a product's reviews newest-first with author names
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ReviewWithAuthor, error)

	// FindByUserAndProduct finds the review a user left on a product, if any
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Review, error)

	// FindAll lists reviews matching the filter (admin view)
	FindAll(ctx context.Context, filter shared.Filter) ([]ReviewWithAuthor, error)

	// Save creates or updates a review
	Save(ctx context.Context, review *Review) error

	// Delete deletes a review
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts reviews matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
