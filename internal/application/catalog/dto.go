package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/catalog"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Price       float64 `json:"price" binding:"gte=0"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,min=1,max=100"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

// UpdateStockRequest represents a request to replace a product's stock level
type UpdateStockRequest struct {
	Stock *int `json:"stock" binding:"required,gte=0"`
}

// ListProductsFilter carries list query parameters
type ListProductsFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Category string `form:"category"`
	InStock  bool   `form:"in_stock"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       valueobject.Money `json:"price"`
	Stock       int               `json:"stock"`
	Category    string            `json:"category"`
	ImageURL    string            `json:"image_url"`
	InStock     bool              `json:"in_stock"`
	LowStock    bool              `json:"low_stock"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ToProductResponse converts a product to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		InStock:     !p.IsOutOfStock(),
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// InventorySummaryResponse is the admin dashboard stock overview
type InventorySummaryResponse struct {
	TotalProducts  int64             `json:"total_products"`
	LowStockCount  int64             `json:"low_stock_count"`
	OutOfStock     int64             `json:"out_of_stock"`
	InventoryValue valueobject.Money `json:"inventory_value"`
}

// CreateReviewRequest represents a request to review a product
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ListReviewsFilter carries admin review list query parameters
type ListReviewsFilter struct {
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	Rating    int        `form:"rating"`
	ProductID *uuid.UUID `form:"product_id"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	UserID     uuid.UUID `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToReviewResponse converts a review to its response form
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// ToReviewWithAuthorResponse converts a joined review row to its response form
func ToReviewWithAuthorResponse(r catalog.ReviewWithAuthor) ReviewResponse {
	resp := ToReviewResponse(&r.Review)
	resp.AuthorName = r.AuthorName
	return resp
}
