package cart

import (
	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
)

// Session identifies whose cart an operation targets. Authenticated
// requests carry a user ID; guests carry an opaque cart-session token.
type Session struct {
	UserID     *uuid.UUID
	GuestToken string
}

// IsAuthenticated reports whether the session belongs to a logged-in user
func (s Session) IsAuthenticated() bool {
	return s.UserID != nil
}

// AddItemRequest represents a request to add one unit of a product
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=50"`
	Color     string    `json:"color" binding:"max=50"`
}

// UpdateItemRequest represents a request to set a line's quantity
type UpdateItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	Size      string    `json:"size" binding:"max=50"`
	Color     string    `json:"color" binding:"max=50"`
}

// RemoveItemRequest represents a request to delete a line
type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"max=50"`
	Color     string    `json:"color" binding:"max=50"`
}

// ItemResponse is one cart line joined with live product details
type ItemResponse struct {
	ProductID uuid.UUID         `json:"product_id"`
	Name      string            `json:"name"`
	Price     valueobject.Money `json:"price"`
	ImageURL  string            `json:"image_url"`
	Stock     int               `json:"stock"`
	Quantity  int               `json:"quantity"`
	Size      string            `json:"size,omitempty"`
	Color     string            `json:"color,omitempty"`
	LineTotal valueobject.Money `json:"line_total"`
}

// CartResponse is the full cart with derived totals
type CartResponse struct {
	Items     []ItemResponse    `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     valueobject.Money `json:"total"`
}
