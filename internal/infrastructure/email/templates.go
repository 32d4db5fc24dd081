package email

import (
	"fmt"
	"html"
	"strings"
)

// OrderLine is one order item rendered into a confirmation email
type OrderLine struct {
	Name      string
	Quantity  int
	LineTotal string
}

func wrap(title, body string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #333; font-size: 32px; margin: 0;">ZAN&amp;CO</h1>
    <p style="color: #666; font-size: 14px; margin-top: 5px;">%s</p>
  </div>
  %s
  <hr style="border: 1px solid #eee; margin: 30px 0;">
  <p style="font-size: 12px; color: #888; text-align: center;">This is an automated message from ZAN&amp;CO</p>
</div>`, html.EscapeString(title), body)
}

// WelcomeMessage builds the email sent after registration
func WelcomeMessage(to, name string) Message {
	body := fmt.Sprintf(`<h2 style="color: #333;">Welcome, %s!</h2>
<p style="color: #555;">Your account is ready. Browse the catalog, fill your cart and check out whenever you like.</p>`,
		html.EscapeString(name))
	return Message{
		To:      []string{to},
		Subject: "Welcome to ZAN&CO!",
		HTML:    wrap("Welcome", body),
	}
}

// OrderConfirmationMessage builds the email sent after checkout
func OrderConfirmationMessage(to, name, orderID, total, bankName, accountName, accountNumber string, minutes int, lines []OrderLine) Message {
	var rows strings.Builder
	for _, l := range lines {
		rows.WriteString(fmt.Sprintf(`<tr><td style="padding: 8px 0;">%s × %d</td><td style="padding: 8px 0; text-align: right;">%s</td></tr>`,
			html.EscapeString(l.Name), l.Quantity, html.EscapeString(l.LineTotal)))
	}

	body := fmt.Sprintf(`<h2 style="color: #333;">Thanks for your order, %s!</h2>
<p style="color: #555;">Order <strong style="font-family: monospace;">%s</strong> is reserved for you.</p>
<div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <table style="width: 100%%; border-collapse: collapse;">%s</table>
  <p style="font-weight: bold; text-align: right; margin: 10px 0 0;">Total: %s</p>
</div>
<div style="background: #fff3cd; border: 1px solid #ffc107; border-radius: 8px; padding: 15px; margin: 20px 0;">
  <p style="margin: 0; color: #856404;"><strong>Pay by bank transfer within %d minutes</strong> or the order is cancelled automatically.</p>
  <p style="margin: 10px 0 0; color: #856404;">%s — %s — %s</p>
</div>`,
		html.EscapeString(name), html.EscapeString(shortID(orderID)), rows.String(), html.EscapeString(total),
		minutes, html.EscapeString(bankName), html.EscapeString(accountName), html.EscapeString(accountNumber))

	return Message{
		To:      []string{to},
		Subject: "Order Confirmed - ZAN&CO",
		HTML:    wrap("Order Confirmation", body),
	}
}

// PaymentNotificationMessage builds the email alerting the admin that a
// customer reported a bank transfer
func PaymentNotificationMessage(adminEmail, orderID, customerName, customerEmail, total string) Message {
	body := fmt.Sprintf(`<div style="background-color: #d4edda; border: 1px solid #c3e6cb; border-radius: 8px; padding: 20px; margin-bottom: 20px;">
  <h2 style="color: #155724; margin: 0 0 10px 0;">Customer claims payment sent</h2>
</div>
<div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <table style="width: 100%%; border-collapse: collapse;">
    <tr><td style="padding: 8px 0; color: #666;">Order ID:</td><td style="padding: 8px 0; font-weight: bold; font-family: monospace;">%s</td></tr>
    <tr><td style="padding: 8px 0; color: #666;">Customer:</td><td style="padding: 8px 0; font-weight: bold;">%s</td></tr>
    <tr><td style="padding: 8px 0; color: #666;">Email:</td><td style="padding: 8px 0;">%s</td></tr>
    <tr><td style="padding: 8px 0; color: #666;">Amount:</td><td style="padding: 8px 0; font-weight: bold; color: #28a745;">%s</td></tr>
  </table>
</div>
<p style="color: #856404;"><strong>Action required:</strong> verify the transfer in the bank account and update the order status.</p>`,
		html.EscapeString(orderID), html.EscapeString(customerName), html.EscapeString(customerEmail), html.EscapeString(total))

	return Message{
		To:      []string{adminEmail},
		Subject: fmt.Sprintf("Payment Notification - Order %s", shortID(orderID)),
		HTML:    wrap("Payment Notification", body),
	}
}

// PasswordResetMessage builds the email carrying a reset link
func PasswordResetMessage(to, name, resetURL string) Message {
	body := fmt.Sprintf(`<h2 style="color: #333;">Hi %s,</h2>
<p style="color: #555;">We received a request to reset your password. The link below is valid for one hour and can be used once.</p>
<p style="text-align: center; margin: 30px 0;">
  <a href="%s" style="background: #333; color: #fff; padding: 12px 30px; border-radius: 6px; text-decoration: none;">Reset Password</a>
</p>
<p style="color: #888; font-size: 13px;">If you didn't ask for this, you can ignore this email.</p>`,
		html.EscapeString(name), resetURL)

	return Message{
		To:      []string{to},
		Subject: "Reset Your ZAN&CO Password",
		HTML:    wrap("Password Reset", body),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
