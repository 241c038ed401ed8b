package email

import (
	"testing"

	"audition_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_OfferReceived(t *testing.T) {
	provider := NewLogProvider(NewTemplateManager())
	notifier := NewNotifier(provider, "https://app.example.com/")

	err := notifier.OfferReceived(OfferNotification{
		OfferID:       "offer-1",
		To:            "singer@example.com",
		UserName:      "Singer",
		BusinessName:  "Acme",
		AuditionTitle: "Vocal audition",
		Message:       "<b>Join us</b>",
	})
	require.NoError(t, err)

	sent := provider.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"singer@example.com"}, sent[0].To)
	assert.Equal(t, "New audition offer: Vocal audition", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "https://app.example.com/offers/offer-1")
	assert.Contains(t, sent[0].HTMLBody, "&lt;b&gt;Join us&lt;/b&gt;", "сообщение экранируется")
}

func TestNotifier_NoRecipient(t *testing.T) {
	notifier := NewNotifier(NewLogProvider(NewTemplateManager()), "")
	assert.Error(t, notifier.OfferReceived(OfferNotification{OfferID: "x"}))
}

func TestNewProvider(t *testing.T) {
	_, isLog := NewProvider(config.EmailConfig{Enabled: false}).(*LogProvider)
	assert.True(t, isLog)

	smtp, isSMTP := NewProvider(config.EmailConfig{Enabled: true, SMTPPort: 587}).(*SMTPProvider)
	require.True(t, isSMTP)
	assert.Error(t, smtp.Validate(), "host is required")
}

func TestTemplateManager_Unknown(t *testing.T) {
	_, err := NewTemplateManager().Render("missing", nil)
	assert.Error(t, err)
}
