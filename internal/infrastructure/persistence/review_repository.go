package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/catalog"
	"github.com/zanco/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReviewRepository implements catalog.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Review, error) {
	var review catalog.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByProduct lists a product's reviews newest-first with author names
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ReviewWithAuthor, error) {
	var reviews []catalog.ReviewWithAuthor
	err := r.db.WithContext(ctx).Model(&catalog.Review{}).
		Select("product_reviews.*, users.name AS author_name").
		Joins("JOIN users ON users.id = product_reviews.user_id").
		Where("product_reviews.product_id = ?", productID).
		Order("product_reviews.created_at DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByUserAndProduct finds the review a user left on a product, if any
func (r *GormReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*catalog.Review, error) {
	var review catalog.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindAll lists reviews matching the filter (admin view)
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ReviewWithAuthor, error) {
	var reviews []catalog.ReviewWithAuthor
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Review{}).
		Select("product_reviews.*, users.name AS author_name").
		Joins("JOIN users ON users.id = product_reviews.user_id"), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	dir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		dir = "ASC"
	}
	if err := query.Order("product_reviews.created_at " + dir).Scan(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reviews matching the filter
func (r *GormReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Review{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies the rating and product conditions shared by the
// admin list and its count
func (r *GormReviewRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if rating, ok := filter.Filters["rating"]; ok {
		query = query.Where("product_reviews.rating = ?", rating)
	}
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_reviews.product_id = ?", productID)
	}
	return query
}

var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
