package mailer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/primalpath/report-engine/internal/domain/report"
)

// SentMail captures an access-link delivery for inspection in tests.
type SentMail struct {
	Email     string
	FirstName string
	Link      string
	ExpiresAt time.Time
}

// MemoryMailer records deliveries instead of sending them. It is the default
// when no mail provider is configured, so local runs still log the link.
type MemoryMailer struct {
	mu     sync.Mutex
	sent   []SentMail
	logger *slog.Logger
}

// NewMemoryMailer constructs the mailer.
func NewMemoryMailer(logger *slog.Logger) *MemoryMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryMailer{logger: logger.With("component", "mailer.memory")}
}

// SendAccessLink records the delivery.
func (m *MemoryMailer) SendAccessLink(_ context.Context, email, firstName, link string, expiresAt time.Time) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentMail{Email: email, FirstName: firstName, Link: link, ExpiresAt: expiresAt})
	m.mu.Unlock()
	m.logger.Info("report access link", "email", email, "link", link, "expiresAt", expiresAt)
	return nil
}

// Sent returns a copy of all recorded deliveries.
func (m *MemoryMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

var _ report.Mailer = (*MemoryMailer)(nil)
