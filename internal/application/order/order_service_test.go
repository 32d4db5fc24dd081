package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zanco/backend/internal/domain/cart"
	"github.com/zanco/backend/internal/domain/catalog"
	"github.com/zanco/backend/internal/domain/identity"
	"github.com/zanco/backend/internal/domain/order"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

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

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type serviceMocks struct {
	orders   *MockOrderRepository
	carts    *MockCartRepository
	products *MockProductRepository
	users    *MockUserRepository
}

func testPolicy() CheckoutPolicy {
	return CheckoutPolicy{
		FreeShippingThreshold: valueobject.NewMoneyNGNFromFloat(50),
		ShippingFee:           valueobject.NewMoneyNGNFromFloat(4.99),
		TaxRate:               decimal.NewFromFloat(0.08),
		PaymentWindow:         30 * time.Minute,
		BankName:              "First Bank",
		BankAccountName:       "ZAN&CO Ltd",
		BankAccountNumber:     "0123456789",
	}
}

func newService(t *testing.T) (*OrderService, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		orders:   new(MockOrderRepository),
		carts:    new(MockCartRepository),
		products: new(MockProductRepository),
		users:    new(MockUserRepository),
	}
	svc := NewOrderService(m.orders, m.carts, m.products, m.users, testPolicy(), nil, zap.NewNop())
	return svc, m
}

func checkoutProduct(t *testing.T, name string, price float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "", "shirts", valueobject.NewMoneyNGNFromFloat(price), stock)
	require.NoError(t, err)
	product.ClearDomainEvents()
	return product
}

func pendingOrder(t *testing.T, userID uuid.UUID, window time.Duration) *order.Order {
	t.Helper()
	productID := uuid.New()
	o, err := order.NewOrder(userID, []order.Item{
		{ProductID: &productID, ProductName: "Linen Shirt", UnitPrice: valueobject.NewMoneyNGNFromFloat(45), Quantity: 1},
	}, valueobject.NewMoneyNGNFromFloat(45), valueobject.NewMoneyNGNFromFloat(4.99), valueobject.NewMoneyNGNFromFloat(3.60), window)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestOrderService_Checkout(t *testing.T) {
	t.Run("empty cart is refused", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		m.carts.On("FindByUser", mock.Anything, userID).Return([]cart.Item{}, nil)

		_, err := svc.Checkout(context.Background(), userID)
		assert.Equal(t, shared.ErrEmptyCart, err)
	})

	t.Run("subtotal below threshold pays the flat fee", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		product := checkoutProduct(t, "Wool Scarf", 20.00, 10)

		m.carts.On("FindByUser", mock.Anything, userID).Return([]cart.Item{
			{ProductID: product.ID, Quantity: 2},
		}, nil)
		m.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		m.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		m.carts.On("ReplaceForUser", mock.Anything, userID, []cart.Line(nil)).Return(nil)

		resp, err := svc.Checkout(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, resp.Status)
		assert.True(t, resp.Subtotal.Equals(valueobject.NewMoneyNGNFromFloat(40.00)))
		assert.True(t, resp.Shipping.Equals(valueobject.NewMoneyNGNFromFloat(4.99)))
		assert.True(t, resp.Tax.Equals(valueobject.NewMoneyNGNFromFloat(3.20)))
		assert.True(t, resp.Total.Equals(valueobject.NewMoneyNGNFromFloat(48.19)))
		require.NotNil(t, resp.PaymentInstructions)
		assert.Equal(t, "First Bank", resp.PaymentInstructions.BankName)
		assert.Greater(t, resp.PaymentExpiresInSeconds, int64(1700))
		m.carts.AssertExpectations(t)
	})

	t.Run("subtotal above threshold ships free", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		product := checkoutProduct(t, "Denim Jacket", 89.99, 5)

		m.carts.On("FindByUser", mock.Anything, userID).Return([]cart.Item{
			{ProductID: product.ID, Quantity: 1},
		}, nil)
		m.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		m.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		m.carts.On("ReplaceForUser", mock.Anything, userID, []cart.Line(nil)).Return(nil)

		resp, err := svc.Checkout(context.Background(), userID)

		require.NoError(t, err)
		assert.True(t, resp.Shipping.IsZero())
	})

	t.Run("lines whose product is gone are skipped", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		product := checkoutProduct(t, "Still Here", 10.00, 5)

		m.carts.On("FindByUser", mock.Anything, userID).Return([]cart.Item{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 3},
		}, nil)
		m.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
		m.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		m.carts.On("ReplaceForUser", mock.Anything, userID, []cart.Line(nil)).Return(nil)

		resp, err := svc.Checkout(context.Background(), userID)

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Still Here", resp.Items[0].ProductName)
	})

	t.Run("cart of only vanished products is empty", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()

		m.carts.On("FindByUser", mock.Anything, userID).Return([]cart.Item{
			{ProductID: uuid.New(), Quantity: 1},
		}, nil)
		m.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{}, nil)

		_, err := svc.Checkout(context.Background(), userID)
		assert.Equal(t, shared.ErrEmptyCart, err)
		m.orders.AssertNotCalled(t, "Save")
	})
}

func TestOrderService_Get(t *testing.T) {
	t.Run("expired unpaid pending order lapses on read", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		o := pendingOrder(t, userID, -time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.orders.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.Get(context.Background(), userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, resp.Status)
		assert.Equal(t, int64(0), resp.PaymentExpiresInSeconds)
		assert.Nil(t, resp.PaymentInstructions)
		m.orders.AssertExpectations(t)
	})

	t.Run("another user's order reads as not found", func(t *testing.T) {
		svc, m := newService(t)
		o := pendingOrder(t, uuid.New(), 30*time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Get(context.Background(), uuid.New(), o.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("pending order reports remaining seconds and bank details", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		o := pendingOrder(t, userID, 30*time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		resp, err := svc.Get(context.Background(), userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, resp.Status)
		assert.Greater(t, resp.PaymentExpiresInSeconds, int64(1700))
		assert.NotNil(t, resp.PaymentInstructions)
	})
}

func TestOrderService_MarkPaymentSent(t *testing.T) {
	t.Run("records the claim and keeps the order pending", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		o := pendingOrder(t, userID, 30*time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.orders.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.MarkPaymentSent(context.Background(), userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, resp.Status)
		assert.NotNil(t, resp.PaymentSentAt)
	})

	t.Run("expired window refuses the claim", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		o := pendingOrder(t, userID, -time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.orders.On("Save", mock.Anything, o).Return(nil)

		_, err := svc.MarkPaymentSent(context.Background(), userID, o.ID)

		assert.Equal(t, shared.ErrPaymentExpired, err)
		assert.Equal(t, order.StatusCancelled, o.Status)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("pending order cancels", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		o := pendingOrder(t, userID, 30*time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.orders.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.Cancel(context.Background(), userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, resp.Status)
	})

	t.Run("shipped order cannot cancel", func(t *testing.T) {
		svc, m := newService(t)
		userID := uuid.New()
		o := pendingOrder(t, userID, 30*time.Minute)
		require.NoError(t, o.TransitionTo(order.StatusProcessing))
		require.NoError(t, o.TransitionTo(order.StatusShipped))
		o.ClearDomainEvents()

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.Cancel(context.Background(), userID, o.ID)
		assert.Equal(t, shared.ErrInvalidState, err)
		m.orders.AssertNotCalled(t, "Save")
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		svc, m := newService(t)
		o := pendingOrder(t, uuid.New(), 30*time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		m.orders.On("Save", mock.Anything, o).Return(nil)

		resp, err := svc.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "processing"})

		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, resp.Status)
	})

	t.Run("invalid transition leaves the order unchanged", func(t *testing.T) {
		svc, m := newService(t)
		o := pendingOrder(t, uuid.New(), 30*time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "delivered"})

		assert.Equal(t, shared.ErrInvalidState, err)
		assert.Equal(t, order.StatusPending, o.Status)
		m.orders.AssertNotCalled(t, "Save")
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, m := newService(t)
		o := pendingOrder(t, uuid.New(), 30*time.Minute)

		m.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := svc.UpdateStatus(context.Background(), o.ID, UpdateStatusRequest{Status: "teleported"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})
}

func TestOrderService_List(t *testing.T) {
	svc, m := newService(t)

	user, err := identity.NewUser("ada@example.com", "Ada", "sekret-99!")
	require.NoError(t, err)
	o := pendingOrder(t, user.ID, 30*time.Minute)

	m.orders.On("FindAll", mock.Anything, mock.Anything).Return([]order.Order{*o}, nil)
	m.orders.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	result, err := svc.List(context.Background(), ListOrdersFilter{})

	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.NotNil(t, result.Items[0].Customer)
	assert.Equal(t, "Ada", result.Items[0].Customer.Name)
	assert.Equal(t, "ada@example.com", result.Items[0].Customer.Email)
}
