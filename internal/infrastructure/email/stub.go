package email

import (
	"context"
	"sync"
)

// RecordingMailer captures sent messages for tests
type RecordingMailer struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

// Send implements Mailer
func (m *RecordingMailer) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msg)
	return nil
}

// Sent returns a copy of the captured messages
func (m *RecordingMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.Messages))
	copy(out, m.Messages)
	return out
}

var _ Mailer = (*RecordingMailer)(nil)
