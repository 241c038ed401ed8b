package email

import (
	"fmt"
	"strings"

	"audition_backend/internal/config"
)

// NewProvider выбирает SMTP, если отправка включена, иначе пишет письма в лог
func NewProvider(cfg config.EmailConfig) Provider {
	renderer := NewTemplateManager()
	if cfg.Enabled {
		return NewSMTPProvider(cfg, renderer)
	}
	return NewLogProvider(renderer)
}

// OfferNotification - данные письма о новом оффере
type OfferNotification struct {
	OfferID       string
	To            string
	UserName      string
	BusinessName  string
	AuditionTitle string
	Message       string
}

// Notifier отправляет уведомления пользователям
type Notifier struct {
	provider    Provider
	frontendURL string
}

func NewNotifier(provider Provider, frontendURL string) *Notifier {
	return &Notifier{
		provider:    provider,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// OfferReceived уведомляет получателя оффера
func (n *Notifier) OfferReceived(o OfferNotification) error {
	if o.To == "" {
		return fmt.Errorf("offer %s: recipient has no email", o.OfferID)
	}

	data := TemplateData{
		"UserName":      o.UserName,
		"BusinessName":  o.BusinessName,
		"AuditionTitle": o.AuditionTitle,
		"Message":       o.Message,
	}
	if n.frontendURL != "" {
		data["OfferURL"] = n.frontendURL + "/offers/" + o.OfferID
	}

	subject := fmt.Sprintf("New audition offer: %s", o.AuditionTitle)
	return n.provider.SendTemplate([]string{o.To}, subject, TemplateOfferReceived, data)
}
