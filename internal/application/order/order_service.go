package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/cart"
	"github.com/zanco/backend/internal/domain/catalog"
	"github.com/zanco/backend/internal/domain/identity"
	"github.com/zanco/backend/internal/domain/order"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// OrderService handles checkout and the order lifecycle. Payment expiry
// is owned here: every read lapses a pending order whose window closed
// before returning it.
type OrderService struct {
	orderRepo      order.Repository
	cartRepo       cart.Repository
	productRepo    catalog.ProductRepository
	userRepo       identity.UserRepository
	policy         CheckoutPolicy
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	policy CheckoutPolicy,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		policy:         policy,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Checkout turns the user's cart into a pending order and clears the
// cart. Items snapshot the product name and price at purchase time.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID) (*OrderResponse, error) {
	rows, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrEmptyCart
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	subtotal := valueobject.ZeroNGN()
	items := make([]order.Item, 0, len(rows))
	for _, row := range rows {
		product, ok := byID[row.ProductID]
		if !ok {
			continue
		}
		productID := product.ID
		items = append(items, order.Item{
			ProductID:   &productID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    row.Quantity,
			Size:        row.Size,
			Color:       row.Color,
		})
		subtotal = subtotal.MustAdd(product.Price.MultiplyByInt(int64(row.Quantity)))
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}

	shipping := s.policy.ShippingFee
	if qualifies, _ := subtotal.GreaterThan(s.policy.FreeShippingThreshold); qualifies {
		shipping = valueobject.ZeroNGN()
	}
	tax := subtotal.Multiply(s.policy.TaxRate).Round(2)

	o, err := order.NewOrder(userID, items, subtotal, shipping, tax, s.policy.PaymentWindow)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	if err := s.cartRepo.ReplaceForUser(ctx, userID, nil); err != nil {
		s.logger.Warn("Failed to clear cart after checkout",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, o)

	response := s.toResponse(o)
	response.PaymentInstructions = s.paymentInstructions()
	return &response, nil
}

// Get retrieves one of the user's orders
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	s.lapseIfExpired(ctx, o)

	response := s.toResponse(o)
	if o.Status == order.StatusPending {
		response.PaymentInstructions = s.paymentInstructions()
	}
	return &response, nil
}

// ListByUser retrieves the user's orders newest-first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter ListOrdersFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := s.toDomainFilter(&filter)

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		s.lapseIfExpired(ctx, &orders[i])
		responses[i] = s.toResponse(&orders[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// MarkPaymentSent records the customer's claim of a completed transfer
// and leaves the status pending for admin confirmation.
func (s *OrderService) MarkPaymentSent(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if s.lapseIfExpired(ctx, o) {
		return nil, shared.ErrPaymentExpired
	}

	if err := o.MarkPaymentSent(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)

	response := s.toResponse(o)
	return &response, nil
}

// Cancel cancels one of the user's still-pending orders
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	s.lapseIfExpired(ctx, o)

	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)

	response := s.toResponse(o)
	return &response, nil
}

// List retrieves all orders for the admin dashboard, joined with the
// owning customer's name and email.
func (s *OrderService) List(ctx context.Context, filter ListOrdersFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := s.toDomainFilter(&filter)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	customers := make(map[uuid.UUID]*CustomerInfo)
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		s.lapseIfExpired(ctx, &orders[i])
		responses[i] = s.toResponse(&orders[i])
		responses[i].Customer = s.customerInfo(ctx, customers, orders[i].UserID)
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateStatus moves an order to a new status (admin operation)
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.lapseIfExpired(ctx, o)

	if err := o.TransitionTo(order.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)

	response := s.toResponse(o)
	return &response, nil
}

func (s *OrderService) findOwned(ctx context.Context, userID, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

// lapseIfExpired persists and reports the lapse of an unpaid pending
// order whose payment window closed.
func (s *OrderService) lapseIfExpired(ctx context.Context, o *order.Order) bool {
	if !o.LapseIfExpired(time.Now()) {
		return false
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to persist lapsed order",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
	s.publishEvents(ctx, o)
	return true
}

func (s *OrderService) customerInfo(ctx context.Context, cache map[uuid.UUID]*CustomerInfo, userID uuid.UUID) *CustomerInfo {
	if info, ok := cache[userID]; ok {
		return info
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		cache[userID] = nil
		return nil
	}
	info := &CustomerInfo{ID: user.ID, Name: user.Name, Email: user.Email}
	cache[userID] = info
	return info
}

func (s *OrderService) toDomainFilter(filter *ListOrdersFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}

func (s *OrderService) paymentInstructions() *PaymentInstructions {
	return &PaymentInstructions{
		BankName:      s.policy.BankName,
		AccountName:   s.policy.BankAccountName,
		AccountNumber: s.policy.BankAccountNumber,
	}
}

func (s *OrderService) toResponse(o *order.Order) OrderResponse {
	return ToOrderResponse(o, time.Now())
}

func (s *OrderService) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}
