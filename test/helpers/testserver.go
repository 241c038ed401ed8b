// Package helpers поднимает полный HTTP-стек сервиса поверх in-memory SQLite
// для интеграционных тестов.
package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"audition_backend/internal/app"
	"audition_backend/internal/auth"
	"audition_backend/internal/config"
	"audition_backend/internal/email"
	"audition_backend/internal/metrics"
	"audition_backend/internal/services"
	"audition_backend/internal/social"
	"audition_backend/internal/testutil"

	"gorm.io/gorm"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Mail     *email.LogProvider
	Provider *SocialProvider
	Config   *config.Config
}

// NewTestServer - сервер со всеми модулями и без rate limit
func NewTestServer(t *testing.T) *TestServer {
	return NewTestServerWithConfig(t, nil)
}

// NewTestServerWithConfig позволяет поменять конфигурацию перед сборкой роутера
func NewTestServerWithConfig(t *testing.T, configure func(cfg *config.Config)) *TestServer {
	t.Helper()

	provider := NewSocialProvider(t)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret-for-integration"
	cfg.Database.Driver = "sqlite"
	cfg.RateLimit.Enabled = false
	cfg.Workers.Enabled = false
	cfg.Social.GoogleURL = provider.URL("google")
	cfg.Social.KakaoURL = provider.URL("kakao")
	cfg.Social.NaverURL = provider.URL("naver")
	cfg.Social.FacebookURL = provider.URL("facebook")
	if configure != nil {
		configure(cfg)
	}

	db := testutil.NewDB(t)
	mail := email.NewLogProvider(email.NewTemplateManager())

	deps := services.Dependencies{
		Tokens:   auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute, cfg.JWT.Issuer),
		Social:   social.NewClient(cfg.Social),
		Notifier: email.NewNotifier(mail, "https://app.example.com"),
		Metrics:  metrics.New(),
	}

	server := httptest.NewServer(app.New(cfg, db, deps).Router())
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		DB:       db,
		Mail:     mail,
		Provider: provider,
		Config:   cfg,
	}
}

// SendRequest отправляет JSON-запрос и возвращает ответ с телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return res, string(resBody)
}
