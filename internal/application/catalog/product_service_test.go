package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zanco/backend/internal/domain/catalog"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
	"github.com/zanco/backend/internal/infrastructure/storage"
)

func newProductService(repo *MockProductRepository, images storage.ImageStorage) *ProductService {
	return NewProductService(repo, images, nil)
}

func existingProduct(t *testing.T, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", "shirts", valueobject.NewMoneyNGNFromFloat(price), stock)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := newProductService(repo, storage.NewStubImageStorage())

		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(context.Background(), CreateProductRequest{
			Name:     "Linen Shirt",
			Category: "shirts",
			Price:    45.00,
			Stock:    12,
		})

		require.NoError(t, err)
		assert.Equal(t, "Linen Shirt", resp.Name)
		assert.Equal(t, 12, resp.Stock)
		assert.True(t, resp.InStock)
		repo.AssertExpectations(t)
	})

	t.Run("rejects empty name before hitting the repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := newProductService(repo, storage.NewStubImageStorage())

		_, err := svc.Create(context.Background(), CreateProductRequest{Name: "  ", Category: "shirts"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_NAME", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := newProductService(repo, storage.NewStubImageStorage())

		product := existingProduct(t, "Old Name", 10.00, 5)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)

		newName := "New Name"
		newPrice := 15.50
		resp, err := svc.Update(context.Background(), product.ID, UpdateProductRequest{
			Name:  &newName,
			Price: &newPrice,
		})

		require.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
		assert.Equal(t, "shirts", resp.Category)
		assert.True(t, resp.Price.Equals(valueobject.NewMoneyNGNFromFloat(15.50)))
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := newProductService(repo, storage.NewStubImageStorage())

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(context.Background(), id, UpdateProductRequest{})
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestProductService_SetStock(t *testing.T) {
	t.Run("replaces the stock level", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := newProductService(repo, storage.NewStubImageStorage())

		product := existingProduct(t, "Linen Shirt", 45.00, 5)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)

		resp, err := svc.SetStock(context.Background(), product.ID, 0)

		require.NoError(t, err)
		assert.Equal(t, 0, resp.Stock)
		assert.False(t, resp.InStock)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := newProductService(repo, storage.NewStubImageStorage())

		product := existingProduct(t, "Linen Shirt", 45.00, 5)
		repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := svc.SetStock(context.Background(), product.ID, -1)

		assert.Equal(t, shared.ErrInvalidStock, err)
		assert.Equal(t, 5, product.Stock)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newProductService(repo, storage.NewStubImageStorage())

	product := existingProduct(t, "Linen Shirt", 45.00, 12)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "linen" && f.Filters["category"] == "shirts" && f.Page == 1
	})).Return([]catalog.Product{*product}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	result, err := svc.List(context.Background(), ListProductsFilter{
		Search:   "linen",
		Category: "shirts",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Linen Shirt", result.Items[0].Name)
}

func TestProductService_InventorySummary(t *testing.T) {
	repo := new(MockProductRepository)
	svc := newProductService(repo, storage.NewStubImageStorage())

	repo.On("InventorySummary", mock.Anything).Return(&catalog.InventorySummary{
		TotalProducts:  3,
		LowStockCount:  1,
		OutOfStock:     1,
		InventoryValue: valueobject.NewMoneyNGNFromFloat(1100),
	}, nil)

	summary, err := svc.InventorySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalProducts)
	assert.Equal(t, int64(1), summary.LowStockCount)
}

func TestProductService_UploadImage(t *testing.T) {
	repo := new(MockProductRepository)
	images := storage.NewStubImageStorage()
	svc := newProductService(repo, images)

	product := existingProduct(t, "Linen Shirt", 45.00, 12)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Save", mock.Anything, product).Return(nil)

	resp, err := svc.UploadImage(context.Background(), product.ID, "shirt.PNG", "image/png", strings.NewReader("img-bytes"))

	require.NoError(t, err)
	assert.Contains(t, resp.ImageURL, "products/"+product.ID.String()+"/")
	assert.True(t, strings.HasSuffix(resp.ImageURL, ".png"))
	repo.AssertExpectations(t)
}
