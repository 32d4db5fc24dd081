package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	cartapp "github.com/zanco/backend/internal/application/cart"
	"github.com/zanco/backend/internal/domain/cart"
	"github.com/zanco/backend/internal/domain/catalog"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
	"github.com/zanco/backend/internal/infrastructure/cache"
	"github.com/zanco/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.Item, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]cart.Item), args.Error(1)
}

func (m *MockCartRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, lines []cart.Line) error {
	args := m.Called(ctx, userID, lines)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) InventorySummary(ctx context.Context) (*catalog.InventorySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.InventorySummary), args.Error(1)
}

type cartTestEnv struct {
	router   *gin.Engine
	carts    *MockCartRepository
	products *MockProductRepository
	store    cart.GuestStore
}

// newCartEnv mounts the cart routes. A non-nil userID simulates an
// authenticated request the way OptionalAuth would.
func newCartEnv(userID *uuid.UUID) *cartTestEnv {
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	store := cache.NewInMemoryGuestCartStore()

	svc := cartapp.NewCartService(carts, store, products, zap.NewNop())
	h := NewCartHandler(svc)

	router := gin.New()
	group := router.Group("")
	if userID != nil {
		group.Use(func(c *gin.Context) {
			setJWTContext(c, *userID, "user")
			c.Next()
		})
	}
	h.RegisterRoutes(group)

	return &cartTestEnv{router: router, carts: carts, products: products, store: store}
}

func newCartTestProduct(t *testing.T, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", "shirts", valueobject.NewMoneyNGNFromFloat(price), stock)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func decodeCart(t *testing.T, body []byte) cartapp.CartResponse {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(body, &resp))
	require.True(t, resp.Success)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var cartResp cartapp.CartResponse
	require.NoError(t, json.Unmarshal(raw, &cartResp))
	return cartResp
}

func TestCartHandler_Guest(t *testing.T) {
	t.Run("add stores the line under the session token", func(t *testing.T) {
		env := newCartEnv(nil)
		product := newCartTestProduct(t, "Linen Shirt", 45.00, 3)
		env.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		env.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

		body, _ := json.Marshal(cartapp.AddItemRequest{ProductID: product.ID, Size: "M"})
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set(CartSessionHeader, "guest-tok")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cartResp := decodeCart(t, rec.Body.Bytes())
		require.Len(t, cartResp.Items, 1)
		assert.Equal(t, "Linen Shirt", cartResp.Items[0].Name)
		assert.Equal(t, 1, cartResp.ItemCount)

		lines, err := env.store.Load(context.Background(), "guest-tok")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, product.ID, lines[0].ProductID)
	})

	t.Run("get without session token answers an empty cart", func(t *testing.T) {
		env := newCartEnv(nil)
		env.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cartResp := decodeCart(t, rec.Body.Bytes())
		assert.Empty(t, cartResp.Items)
		assert.Equal(t, 0, cartResp.ItemCount)
	})

	t.Run("remove deletes the matching size", func(t *testing.T) {
		env := newCartEnv(nil)
		product := newCartTestProduct(t, "Linen Shirt", 45.00, 5)
		require.NoError(t, env.store.Save(context.Background(), "guest-tok", []cart.Line{
			{ProductID: product.ID, Quantity: 2, Size: "M"},
			{ProductID: product.ID, Quantity: 1, Size: "L"},
		}))
		env.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)

		url := fmt.Sprintf("/cart/items/%s?size=M", product.ID)
		req := httptest.NewRequest(http.MethodDelete, url, nil)
		req.Header.Set(CartSessionHeader, "guest-tok")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		cartResp := decodeCart(t, rec.Body.Bytes())
		require.Len(t, cartResp.Items, 1)
		assert.Equal(t, "L", cartResp.Items[0].Size)
	})
}

func TestCartHandler_Authenticated(t *testing.T) {
	t.Run("add persists the user's rows", func(t *testing.T) {
		userID := uuid.New()
		env := newCartEnv(&userID)
		product := newCartTestProduct(t, "Linen Shirt", 45.00, 3)

		env.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		env.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		env.carts.On("FindByUser", mock.Anything, userID).Return([]cart.Item{}, nil)
		env.carts.On("ReplaceForUser", mock.Anything, userID, mock.MatchedBy(func(lines []cart.Line) bool {
			return len(lines) == 1 && lines[0].ProductID == product.ID
		})).Return(nil)

		body, _ := json.Marshal(cartapp.AddItemRequest{ProductID: product.ID})
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		env.carts.AssertExpectations(t)
	})

	t.Run("session token is ignored for signed-in users", func(t *testing.T) {
		userID := uuid.New()
		env := newCartEnv(&userID)
		env.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)
		env.carts.On("FindByUser", mock.Anything, userID).Return([]cart.Item{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(CartSessionHeader, "guest-tok")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		env.carts.AssertExpectations(t)
	})
}

func TestCartHandler_Errors(t *testing.T) {
	t.Run("unknown product answers 404", func(t *testing.T) {
		env := newCartEnv(nil)
		productID := uuid.New()
		env.products.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		body, _ := json.Marshal(cartapp.AddItemRequest{ProductID: productID})
		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
		req.Header.Set(CartSessionHeader, "guest-tok")
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	})

	t.Run("malformed body answers 400", func(t *testing.T) {
		env := newCartEnv(nil)

		req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid product ID in path answers 400", func(t *testing.T) {
		env := newCartEnv(nil)

		req := httptest.NewRequest(http.MethodDelete, "/cart/items/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
