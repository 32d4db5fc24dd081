package notification

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/zanco/backend/internal/domain/identity"
	"github.com/zanco/backend/internal/domain/order"
	"github.com/zanco/backend/internal/domain/shared"
	"github.com/zanco/backend/internal/infrastructure/email"
	"go.uber.org/zap"
)

// Settings configures the outbound notification emails
type Settings struct {
	AdminEmail        string
	BaseURL           string // storefront base URL used in links
	BankName          string
	BankAccountName   string
	BankAccountNumber string
	PaymentWindow     time.Duration
}

// EmailNotifier listens for domain events and sends the matching
// transactional email. Delivery is best-effort: failures are logged
// and never surface to the operation that raised the event.
type EmailNotifier struct {
	mailer    email.Mailer
	orderRepo order.Repository
	userRepo  identity.UserRepository
	settings  Settings
	logger    *zap.Logger
}

var _ shared.EventHandler = (*EmailNotifier)(nil)

// NewEmailNotifier creates a new EmailNotifier
func NewEmailNotifier(
	mailer email.Mailer,
	orderRepo order.Repository,
	userRepo identity.UserRepository,
	settings Settings,
	logger *zap.Logger,
) *EmailNotifier {
	return &EmailNotifier{
		mailer:    mailer,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		settings:  settings,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (n *EmailNotifier) EventTypes() []string {
	return []string{
		identity.EventTypeUserRegistered,
		identity.EventTypePasswordResetRequested,
		order.EventTypeOrderPlaced,
		order.EventTypePaymentSent,
	}
}

// Handle processes a domain event
func (n *EmailNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *identity.UserRegisteredEvent:
		n.send(ctx, email.WelcomeMessage(e.Email, e.Name))
	case *identity.PasswordResetRequestedEvent:
		n.send(ctx, email.PasswordResetMessage(e.Email, e.Name, n.resetURL(e.Token)))
	case *order.OrderPlacedEvent:
		n.sendOrderConfirmation(ctx, e)
	case *order.PaymentSentEvent:
		n.sendPaymentNotification(ctx, e)
	}
	return nil
}

func (n *EmailNotifier) sendOrderConfirmation(ctx context.Context, e *order.OrderPlacedEvent) {
	o, err := n.orderRepo.FindByID(ctx, e.OrderID)
	if err != nil {
		n.logger.Warn("Skipping order confirmation email, order not found",
			zap.String("order_id", e.OrderID.String()),
			zap.Error(err),
		)
		return
	}
	user, err := n.userRepo.FindByID(ctx, e.UserID)
	if err != nil {
		n.logger.Warn("Skipping order confirmation email, user not found",
			zap.String("user_id", e.UserID.String()),
			zap.Error(err),
		)
		return
	}

	lines := make([]email.OrderLine, len(o.Items))
	for i, item := range o.Items {
		lines[i] = email.OrderLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().String(),
		}
	}

	n.send(ctx, email.OrderConfirmationMessage(
		user.Email,
		user.Name,
		o.ID.String(),
		o.Total.String(),
		n.settings.BankName,
		n.settings.BankAccountName,
		n.settings.BankAccountNumber,
		int(n.settings.PaymentWindow.Minutes()),
		lines,
	))
}

func (n *EmailNotifier) sendPaymentNotification(ctx context.Context, e *order.PaymentSentEvent) {
	if n.settings.AdminEmail == "" {
		return
	}
	user, err := n.userRepo.FindByID(ctx, e.UserID)
	if err != nil {
		n.logger.Warn("Skipping payment notification email, user not found",
			zap.String("user_id", e.UserID.String()),
			zap.Error(err),
		)
		return
	}

	n.send(ctx, email.PaymentNotificationMessage(
		n.settings.AdminEmail,
		e.OrderID.String(),
		user.Name,
		user.Email,
		e.Total.String(),
	))
}

func (n *EmailNotifier) resetURL(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", n.settings.BaseURL, url.QueryEscape(token))
}

func (n *EmailNotifier) send(ctx context.Context, msg email.Message) {
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger.Warn("Failed to send notification email",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
	}
}
