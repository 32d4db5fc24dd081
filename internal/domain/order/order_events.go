package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced        = "OrderPlaced"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypePaymentSent        = "PaymentSent"
)

// OrderPlacedEvent is published when checkout creates an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID          uuid.UUID         `json:"order_id"`
	UserID           uuid.UUID         `json:"user_id"`
	Total            valueobject.Money `json:"total"`
	ItemCount        int               `json:"item_count"`
	PaymentExpiresAt time.Time         `json:"payment_expires_at"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return &OrderPlacedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:          o.ID,
		UserID:           o.UserID,
		Total:            o.Total,
		ItemCount:        count,
		PaymentExpiresAt: o.PaymentExpiresAt,
	}
}

// OrderStatusChangedEvent is published when an order changes status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	UserID    uuid.UUID `json:"user_id"`
	OldStatus Status    `json:"old_status"`
	NewStatus Status    `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, oldStatus, newStatus Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// PaymentSentEvent is published when the customer reports a transfer
type PaymentSentEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID         `json:"order_id"`
	UserID  uuid.UUID         `json:"user_id"`
	Total   valueobject.Money `json:"total"`
}

// NewPaymentSentEvent creates a new PaymentSentEvent
func NewPaymentSentEvent(o *Order) *PaymentSentEvent {
	return &PaymentSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentSent, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		Total:           o.Total,
	}
}
