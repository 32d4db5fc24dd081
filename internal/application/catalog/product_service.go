package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/catalog"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
	"github.com/zanco/backend/internal/infrastructure/storage"
)

// ProductService handles catalog management and browsing
type ProductService struct {
	productRepo    catalog.ProductRepository
	images         storage.ImageStorage
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, images storage.ImageStorage, eventPublisher shared.EventPublisher) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		images:         images,
		eventPublisher: eventPublisher,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(
		req.Name,
		req.Description,
		req.Category,
		valueobject.NewMoneyNGNFromFloat(req.Price),
		req.Stock,
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product's details and optionally its price
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}
	if err := product.Update(name, description, category); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(valueobject.NewMoneyNGNFromFloat(*req.Price)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// SetStock replaces a product's stock level
func (s *ProductService) SetStock(ctx context.Context, id uuid.UUID, stock int) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetStock(stock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog. Existing order items keep
// their snapshot of the product's name and price.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// Get retrieves a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with search, filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ListProductsFilter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.InStock {
		domainFilter.Filters["in_stock"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// InventorySummary returns the admin dashboard stock overview
func (s *ProductService) InventorySummary(ctx context.Context) (*InventorySummaryResponse, error) {
	summary, err := s.productRepo.InventorySummary(ctx)
	if err != nil {
		return nil, err
	}

	return &InventorySummaryResponse{
		TotalProducts:  summary.TotalProducts,
		LowStockCount:  summary.LowStockCount,
		OutOfStock:     summary.OutOfStock,
		InventoryValue: summary.InventoryValue,
	}, nil
}

// UploadImage stores a product image and records its public URL
func (s *ProductService) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(path.Ext(filename))
	key := fmt.Sprintf("products/%s/%s%s", product.ID, uuid.New(), ext)

	url, err := s.images.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store product image: %w", err)
	}

	product.SetImageURL(url)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}
