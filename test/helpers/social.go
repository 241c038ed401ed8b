package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// SocialProvider - поддельные userinfo-endpoints провайдеров.
// Ответ выбирается по access token.
type SocialProvider struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]string
}

func NewSocialProvider(t *testing.T) *SocialProvider {
	t.Helper()

	p := &SocialProvider{responses: make(map[string]string)}
	p.server = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.server.Close)
	return p
}

// URL - endpoint конкретного провайдера (google, kakao, naver, facebook)
func (p *SocialProvider) URL(provider string) string {
	return p.server.URL + "/" + provider
}

// Set регистрирует JSON, который вернется на данный токен
func (p *SocialProvider) Set(token, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses[token] = body
}

func (p *SocialProvider) serve(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		token = r.URL.Query().Get("access_token")
	}

	p.mu.Lock()
	body, ok := p.responses[token]
	p.mu.Unlock()

	if !ok {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
