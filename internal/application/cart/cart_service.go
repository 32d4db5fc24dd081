package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/cart"
	"github.com/zanco/backend/internal/domain/catalog"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CartService handles guest and authenticated shopping carts. Guest
// carts live in the guest store under a session token; authenticated
// carts are the user's cart_items rows, fully replaced on every
// mutation. Logging in discards the guest list and picks up the rows.
type CartService struct {
	cartRepo    cart.Repository
	guestStore  cart.GuestStore
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.Repository, guestStore cart.GuestStore, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		guestStore:  guestStore,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the session's cart with live product details. Lines whose
// product left the catalog are dropped.
func (s *CartService) Get(ctx context.Context, sess Session) (*CartResponse, error) {
	c, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	products, err := s.lookupProducts(ctx, c)
	if err != nil {
		return nil, err
	}
	if dropped := s.dropMissing(c, products); dropped {
		s.persist(ctx, sess, c)
	}

	return s.toResponse(c, products), nil
}

// Add puts one unit of the product into the cart
func (s *CartService) Add(ctx context.Context, sess Session, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := c.Add(product.ID, product.Stock, req.Size, req.Color); err != nil {
		return nil, err
	}

	if err := s.persistAuthenticated(ctx, sess, c); err != nil {
		return nil, err
	}
	s.persistGuest(ctx, sess, c)

	return s.respond(ctx, c)
}

// SetQuantity sets a line's quantity, clamped to the product's stock
func (s *CartService) SetQuantity(ctx context.Context, sess Session, req UpdateItemRequest) (*CartResponse, error) {
	if req.Quantity < 1 {
		return nil, shared.ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := c.SetQuantity(product.ID, req.Quantity, product.Stock, req.Size, req.Color); err != nil {
		return nil, err
	}

	if err := s.persistAuthenticated(ctx, sess, c); err != nil {
		return nil, err
	}
	s.persistGuest(ctx, sess, c)

	return s.respond(ctx, c)
}

// Remove deletes the matching line. An absent line is a no-op.
func (s *CartService) Remove(ctx context.Context, sess Session, req RemoveItemRequest) (*CartResponse, error) {
	c, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	c.Remove(req.ProductID, req.Size, req.Color)

	if err := s.persistAuthenticated(ctx, sess, c); err != nil {
		return nil, err
	}
	s.persistGuest(ctx, sess, c)

	return s.respond(ctx, c)
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, sess Session) (*CartResponse, error) {
	c, err := s.load(ctx, sess)
	if err != nil {
		return nil, err
	}

	c.Clear()

	if err := s.persistAuthenticated(ctx, sess, c); err != nil {
		return nil, err
	}
	s.persistGuest(ctx, sess, c)

	return s.respond(ctx, c)
}

// ClearForUser empties a user's stored cart. Used after checkout.
func (s *CartService) ClearForUser(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.ReplaceForUser(ctx, userID, nil)
}

func (s *CartService) load(ctx context.Context, sess Session) (*cart.Cart, error) {
	if sess.IsAuthenticated() {
		items, err := s.cartRepo.FindByUser(ctx, *sess.UserID)
		if err != nil {
			return nil, err
		}
		lines := make([]cart.Line, len(items))
		for i, item := range items {
			lines[i] = cart.Line{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Size:      item.Size,
				Color:     item.Color,
			}
		}
		return cart.FromLines(lines), nil
	}

	if sess.GuestToken == "" {
		return cart.New(), nil
	}
	lines, err := s.guestStore.Load(ctx, sess.GuestToken)
	if err != nil {
		s.logger.Warn("Failed to load guest cart, starting empty",
			zap.Error(err),
		)
		return cart.New(), nil
	}
	return cart.FromLines(lines), nil
}

// persistAuthenticated writes the user's row set. Failures surface to
// the caller because the rows are the authoritative cart.
func (s *CartService) persistAuthenticated(ctx context.Context, sess Session, c *cart.Cart) error {
	if !sess.IsAuthenticated() {
		return nil
	}
	return s.cartRepo.ReplaceForUser(ctx, *sess.UserID, c.Lines())
}

// persistGuest writes the guest line list. Failures are logged and
// swallowed; the response still reflects the in-memory mutation.
func (s *CartService) persistGuest(ctx context.Context, sess Session, c *cart.Cart) {
	if sess.IsAuthenticated() || sess.GuestToken == "" {
		return
	}
	if err := s.guestStore.Save(ctx, sess.GuestToken, c.Lines()); err != nil {
		s.logger.Warn("Failed to persist guest cart",
			zap.Error(err),
		)
	}
}

func (s *CartService) persist(ctx context.Context, sess Session, c *cart.Cart) {
	if sess.IsAuthenticated() {
		if err := s.cartRepo.ReplaceForUser(ctx, *sess.UserID, c.Lines()); err != nil {
			s.logger.Warn("Failed to prune stale cart lines",
				zap.String("user_id", sess.UserID.String()),
				zap.Error(err),
			)
		}
		return
	}
	s.persistGuest(ctx, sess, c)
}

func (s *CartService) lookupProducts(ctx context.Context, c *cart.Cart) (map[uuid.UUID]catalog.Product, error) {
	products, err := s.productRepo.FindByIDs(ctx, c.ProductIDs())
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *CartService) dropMissing(c *cart.Cart, products map[uuid.UUID]catalog.Product) bool {
	before := len(c.Lines())
	c.Retain(func(productID uuid.UUID) bool {
		_, ok := products[productID]
		return ok
	})
	return len(c.Lines()) != before
}

func (s *CartService) respond(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	products, err := s.lookupProducts(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.toResponse(c, products), nil
}

func (s *CartService) toResponse(c *cart.Cart, products map[uuid.UUID]catalog.Product) *CartResponse {
	lines := c.Lines()
	items := make([]ItemResponse, 0, len(lines))
	total := valueobject.ZeroNGN()

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		lineTotal := product.Price.MultiplyByInt(int64(line.Quantity))
		total = total.MustAdd(lineTotal)
		items = append(items, ItemResponse{
			ProductID: line.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Stock:     product.Stock,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			LineTotal: lineTotal,
		})
	}

	return &CartResponse{
		Items:     items,
		ItemCount: c.ItemCount(),
		Total:     total,
	}
}
