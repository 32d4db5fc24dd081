package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
)

// PaymentMethodBankTransfer is the only payment method the storefront
// accepts. Customers transfer manually and an admin confirms receipt.
const PaymentMethodBankTransfer = "bank_transfer"

var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusRejected, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCompleted:  {},
	StatusRejected:   {},
	StatusCancelled:  {},
}

// IsValid reports whether the status is a known value
func (s Status) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to the target
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// Item is a snapshot of one purchased product line. Name and unit price
// are copied at checkout so later catalog edits or deletions don't
// rewrite order history; ProductID goes null when the product is removed.
type Item struct {
	shared.BaseEntity
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID        `gorm:"type:uuid"`
	ProductName string            `gorm:"type:varchar(200);not null"`
	UnitPrice   valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Quantity    int               `gorm:"not null"`
	Size        string            `gorm:"type:varchar(50)"`
	Color       string            `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// LineTotal returns unit price multiplied by quantity
func (i Item) LineTotal() valueobject.Money {
	return i.UnitPrice.MultiplyByInt(int64(i.Quantity))
}

// Order is the aggregate root for a placed order
type Order struct {
	shared.BaseAggregateRoot
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status           Status            `gorm:"type:varchar(20);not null;default:'pending'"`
	Subtotal         valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Shipping         valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Tax              valueobject.Money `gorm:"type:decimal(18,2);not null"`
	Total            valueobject.Money `gorm:"type:decimal(18,2);not null"`
	PaymentMethod    string            `gorm:"type:varchar(30);not null"`
	TransactionID    *string           `gorm:"type:varchar(100)"`
	PaymentExpiresAt time.Time         `gorm:"not null"`
	PaymentSentAt    *time.Time
	Items            []Item `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order with a payment window starting now
func NewOrder(userID uuid.UUID, items []Item, subtotal, shipping, tax valueobject.Money, paymentWindow time.Duration) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.ErrEmptyCart
	}

	total := subtotal.MustAdd(shipping).MustAdd(tax)

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            StatusPending,
		Subtotal:          subtotal,
		Shipping:          shipping,
		Tax:               tax,
		Total:             total,
		PaymentMethod:     PaymentMethodBankTransfer,
		PaymentExpiresAt:  time.Now().Add(paymentWindow),
	}

	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].BaseEntity = shared.NewBaseEntity()
		}
		items[i].OrderID = o.ID
	}
	o.Items = items

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// TransitionTo moves the order to a new status if the transition is allowed
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState
	}

	old := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old, target))

	return nil
}

// Cancel cancels a still-pending order
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return shared.ErrInvalidState
	}
	return o.TransitionTo(StatusCancelled)
}

// MarkPaymentSent records that the customer claims to have transferred
// the money. The status stays pending until an admin confirms.
func (o *Order) MarkPaymentSent() error {
	if o.Status != StatusPending {
		return shared.ErrInvalidState
	}
	if o.IsPaymentExpired(time.Now()) {
		return shared.ErrPaymentExpired
	}

	now := time.Now()
	o.PaymentSentAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPaymentSentEvent(o))

	return nil
}

// IsPaymentExpired reports whether the payment window has closed
func (o *Order) IsPaymentExpired(now time.Time) bool {
	return now.After(o.PaymentExpiresAt)
}

// LapseIfExpired cancels a pending order whose payment window closed
// without the customer reporting a transfer. Returns true if the order
// was lapsed.
func (o *Order) LapseIfExpired(now time.Time) bool {
	if o.Status != StatusPending || o.PaymentSentAt != nil || !o.IsPaymentExpired(now) {
		return false
	}

	old := o.Status
	o.Status = StatusCancelled
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old, StatusCancelled))

	return true
}

// PaymentSecondsRemaining returns how many seconds are left in the
// payment window, never below zero.
func (o *Order) PaymentSecondsRemaining(now time.Time) int64 {
	remaining := o.PaymentExpiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return int64(remaining.Seconds())
}
