package email

import (
	"sync"

	"audition_backend/internal/logger"
)

// LogProvider пишет письма в лог вместо отправки. Используется в разработке
// и тестах; отправленные письма доступны через Sent.
type LogProvider struct {
	renderer TemplateRenderer

	mu   sync.Mutex
	sent []Email
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	p.mu.Lock()
	p.sent = append(p.sent, *email)
	p.mu.Unlock()

	logger.Info("Email (not sent)", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: htmlBody})
}

func (p *LogProvider) Validate() error { return nil }

func (p *LogProvider) Close() error { return nil }

// Sent возвращает копию отправленных писем
func (p *LogProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Email(nil), p.sent...)
}
