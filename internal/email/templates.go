package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const TemplateOfferReceived = "offer_received"

const offerReceivedHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>You received an audition offer</h2>
  <p>Hello {{.UserName}},</p>
  <p><strong>{{.BusinessName}}</strong> invites you to the audition <strong>{{.AuditionTitle}}</strong>.</p>
  {{if .Message}}<blockquote style="border-left: 3px solid #ccc; padding-left: 12px;">{{.Message}}</blockquote>{{end}}
  {{if .OfferURL}}<p><a href="{{.OfferURL}}">View the offer</a></p>{{end}}
</body>
</html>`

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// встроенный шаблон всегда парсится
	_ = tm.AddTemplate(TemplateOfferReceived, offerReceivedHTML)
	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет или заменяет шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Option("missingkey=zero").Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
