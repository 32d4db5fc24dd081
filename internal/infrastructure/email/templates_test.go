package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeMessage(t *testing.T) {
	msg := WelcomeMessage("ada@example.com", "Ada <script>")

	assert.Equal(t, []string{"ada@example.com"}, msg.To)
	assert.Equal(t, "Welcome to ZAN&CO!", msg.Subject)
	assert.Contains(t, msg.HTML, "Ada &lt;script&gt;")
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestOrderConfirmationMessage(t *testing.T) {
	msg := OrderConfirmationMessage(
		"ada@example.com", "Ada", "3f2b8c11-aaaa-bbbb-cccc-000000000000",
		"75.60 NGN", "First Bank", "ZAN&CO Ltd", "0123456789", 30,
		[]OrderLine{{Name: "Leather Tote", Quantity: 2, LineTotal: "90.00 NGN"}},
	)

	assert.Equal(t, "Order Confirmed - ZAN&CO", msg.Subject)
	assert.Contains(t, msg.HTML, "3f2b8c11")
	assert.Contains(t, msg.HTML, "Leather Tote")
	assert.Contains(t, msg.HTML, "75.60 NGN")
	assert.Contains(t, msg.HTML, "30 minutes")
	assert.Contains(t, msg.HTML, "0123456789")
}

func TestPaymentNotificationMessage(t *testing.T) {
	msg := PaymentNotificationMessage("admin@zanco.example", "3f2b8c11-aaaa-bbbb-cccc-000000000000", "Ada", "ada@example.com", "75.60 NGN")

	assert.Equal(t, []string{"admin@zanco.example"}, msg.To)
	assert.Contains(t, msg.Subject, "3f2b8c11")
	assert.Contains(t, msg.HTML, "ada@example.com")
}

func TestPasswordResetMessage(t *testing.T) {
	msg := PasswordResetMessage("ada@example.com", "Ada", "https://store.example/reset?token=abc")

	assert.Equal(t, "Reset Your ZAN&CO Password", msg.Subject)
	assert.Contains(t, msg.HTML, "https://store.example/reset?token=abc")
}
