package email

import (
	"crypto/tls"
	"fmt"

	"audition_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config   config.EmailConfig
	dialer   *gomail.Dialer
	renderer TemplateRenderer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(cfg config.EmailConfig, renderer TemplateRenderer) *SMTPProvider {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if cfg.UseTLS {
		dialer.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost}
		// 465 - неявный TLS, остальные порты через STARTTLS
		dialer.SSL = cfg.SMTPPort == 465
	}

	return &SMTPProvider{
		config:   cfg,
		dialer:   dialer,
		renderer: renderer,
	}
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	return p.dialer.DialAndSend(p.buildMessage(email))
}

// SendTemplate отправляет письмо по шаблону
func (p *SMTPProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer == nil {
		return fmt.Errorf("template renderer is not configured")
	}

	htmlBody, err := p.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	return p.Send(&Email{To: to, Subject: subject, HTMLBody: htmlBody})
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.config.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.SMTPPort <= 0 || p.config.SMTPPort > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.SMTPPort)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("sender address is required")
	}
	return nil
}

// Close - соединение открывается на каждое письмо, закрывать нечего
func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}
	return m
}
