package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zanco/backend/internal/domain/order"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
)

// CheckoutPolicy carries the pricing and payment-window rules applied
// at checkout. Values come from configuration.
type CheckoutPolicy struct {
	FreeShippingThreshold valueobject.Money
	ShippingFee           valueobject.Money
	TaxRate               decimal.Decimal
	PaymentWindow         time.Duration
	BankName              string
	BankAccountName       string
	BankAccountNumber     string
}

// PaymentInstructions tells the customer where to send the transfer
type PaymentInstructions struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

// UpdateStatusRequest represents an admin request to move an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrdersFilter carries order list query parameters
type ListOrdersFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
}

// ItemResponse is one order line snapshot
type ItemResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   *uuid.UUID        `json:"product_id"`
	ProductName string            `json:"product_name"`
	UnitPrice   valueobject.Money `json:"unit_price"`
	Quantity    int               `json:"quantity"`
	Size        string            `json:"size,omitempty"`
	Color       string            `json:"color,omitempty"`
	LineTotal   valueobject.Money `json:"line_total"`
}

// CustomerInfo identifies the order's owner in admin listings
type CustomerInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                      uuid.UUID            `json:"id"`
	UserID                  uuid.UUID            `json:"user_id"`
	Status                  order.Status         `json:"status"`
	Subtotal                valueobject.Money    `json:"subtotal"`
	Shipping                valueobject.Money    `json:"shipping"`
	Tax                     valueobject.Money    `json:"tax"`
	Total                   valueobject.Money    `json:"total"`
	PaymentMethod           string               `json:"payment_method"`
	PaymentExpiresAt        time.Time            `json:"payment_expires_at"`
	PaymentExpiresInSeconds int64                `json:"payment_expires_in_seconds"`
	PaymentSentAt           *time.Time           `json:"payment_sent_at,omitempty"`
	PaymentInstructions     *PaymentInstructions `json:"payment_instructions,omitempty"`
	Items                   []ItemResponse       `json:"items"`
	Customer                *CustomerInfo        `json:"customer,omitempty"`
	CreatedAt               time.Time            `json:"created_at"`
	UpdatedAt               time.Time            `json:"updated_at"`
}

// ToOrderResponse converts an order to its response form
func ToOrderResponse(o *order.Order, now time.Time) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Size:        item.Size,
			Color:       item.Color,
			LineTotal:   item.LineTotal(),
		}
	}

	var remaining int64
	if o.Status == order.StatusPending {
		remaining = o.PaymentSecondsRemaining(now)
	}

	return OrderResponse{
		ID:                      o.ID,
		UserID:                  o.UserID,
		Status:                  o.Status,
		Subtotal:                o.Subtotal,
		Shipping:                o.Shipping,
		Tax:                     o.Tax,
		Total:                   o.Total,
		PaymentMethod:           o.PaymentMethod,
		PaymentExpiresAt:        o.PaymentExpiresAt,
		PaymentExpiresInSeconds: remaining,
		PaymentSentAt:           o.PaymentSentAt,
		Items:                   items,
		CreatedAt:               o.CreatedAt,
		UpdatedAt:               o.UpdatedAt,
	}
}
