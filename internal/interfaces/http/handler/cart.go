package handler

import (
	cartapp "github.com/zanco/backend/internal/application/cart"
	"github.com/zanco/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartSessionHeader carries the guest cart token. Ignored for
// authenticated requests, whose cart follows the account.
const CartSessionHeader = "X-Cart-Session"

// CartHandler handles shopping cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// RegisterRoutes registers the cart routes. The group must run
// middleware.OptionalAuth so signed-in customers hit their stored cart.
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cart", h.Get)
	rg.POST("/cart/items", h.AddItem)
	rg.PUT("/cart/items", h.UpdateItem)
	rg.DELETE("/cart/items/:id", h.RemoveItem)
	rg.DELETE("/cart", h.Clear)
}

// session resolves the cart identity for this request
func session(c *gin.Context) cartapp.Session {
	if userID := middleware.GetJWTUserID(c); userID != uuid.Nil {
		return cartapp.Session{UserID: &userID}
	}
	return cartapp.Session{GuestToken: c.GetHeader(CartSessionHeader)}
}

// Get returns the session's cart
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.Get(c.Request.Context(), session(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem puts one unit of a product into the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.Add(c.Request.Context(), session(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem sets a cart line's quantity
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.SetQuantity(c.Request.Context(), session(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem deletes a cart line. Size and color arrive as query
// parameters because the line identity includes them.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	req := cartapp.RemoveItemRequest{
		ProductID: productID,
		Size:      c.Query("size"),
		Color:     c.Query("color"),
	}

	cart, err := h.cartService.Remove(c.Request.Context(), session(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	cart, err := h.cartService.Clear(c.Request.Context(), session(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}
