package email

import "context"

// Message is one outbound email
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer sends transactional email. Implementations must be safe for
// concurrent use; callers treat failures as best-effort and only log them.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NopMailer discards every message. Used when email is disabled.
type NopMailer struct{}

// Send implements Mailer
func (NopMailer) Send(ctx context.Context, msg Message) error {
	return nil
}
