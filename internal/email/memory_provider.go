package email

import (
	"sync"

	"poolservice_backend/internal/logger"
)

const memoryProviderLimit = 500

// MemoryProvider keeps sent messages in memory and logs them. It backs the
// "log" mail driver in development and is the test double for mail.
type MemoryProvider struct {
	mu       sync.Mutex
	renderer TemplateRenderer
	sent     []Email
	// FailWith, when set, is returned by Send instead of recording the message.
	FailWith error
}

func NewMemoryProvider(renderer TemplateRenderer) *MemoryProvider {
	return &MemoryProvider{renderer: renderer}
}

func (p *MemoryProvider) Send(email *Email) error {
	if len(email.Recipients()) == 0 {
		return ErrNoRecipients
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailWith != nil {
		return p.FailWith
	}

	logger.Info("📧 Email captured",
		"subject", email.Subject,
		"to", email.To,
		"bcc_count", len(email.Bcc),
	)

	p.sent = append(p.sent, *email)
	if len(p.sent) > memoryProviderLimit {
		p.sent = p.sent[len(p.sent)-memoryProviderLimit:]
	}
	return nil
}

func (p *MemoryProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	html, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: html})
}

func (p *MemoryProvider) Validate() error { return nil }
func (p *MemoryProvider) Close() error    { return nil }

// Sent returns a copy of the captured messages.
func (p *MemoryProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Email, len(p.sent))
	copy(out, p.sent)
	return out
}

// SentTo returns the captured messages addressed (To, Cc or Bcc) to addr.
func (p *MemoryProvider) SentTo(addr string) []Email {
	var out []Email
	for _, e := range p.Sent() {
		for _, r := range e.Recipients() {
			if r == addr {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func (p *MemoryProvider) Reset() {
	p.mu.Lock()
	p.sent = nil
	p.mu.Unlock()
}
