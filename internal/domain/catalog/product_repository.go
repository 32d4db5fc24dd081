package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter
	// Filter.Search matches name, description and category; a "category"
	// entry in Filter.Filters narrows to one category
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// InventorySummary aggregates stock figures across the catalog
	InventorySummary(ctx context.Context) (*InventorySummary, error)
}

// InventorySummary holds aggregate stock figures for the admin dashboard
type InventorySummary struct {
	TotalProducts  int64             `json:"total_products"`
	LowStockCount  int64             `json:"low_stock_count"`
	OutOfStock     int64             `json:"out_of_stock_count"`
	InventoryValue valueobject.Money `json:"inventory_value"`
}
