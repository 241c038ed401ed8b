package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"audition_backend/internal/config"
	"audition_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, configure func(*config.Config)) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	configure(cfg)

	return New(cfg, testutil.NewDB(t), NewDependencies(cfg))
}

func TestNewScheduler(t *testing.T) {
	t.Run("limiter cleanup runs without domain workers", func(t *testing.T) {
		a := newTestApp(t, func(cfg *config.Config) {
			cfg.Workers.Enabled = false
			cfg.RateLimit.Enabled = true
		})

		s, err := a.newScheduler()
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, []string{"rate-limit-cleanup"}, s.Jobs())
	})

	t.Run("all jobs", func(t *testing.T) {
		a := newTestApp(t, func(cfg *config.Config) {
			cfg.Workers.Enabled = true
			cfg.RateLimit.Enabled = true
		})

		s, err := a.newScheduler()
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, []string{"audition-close", "offer-expiry", "rate-limit-cleanup"}, s.Jobs())
	})

	t.Run("nothing to schedule", func(t *testing.T) {
		a := newTestApp(t, func(cfg *config.Config) {
			cfg.Workers.Enabled = false
			cfg.RateLimit.Enabled = false
		})

		s, err := a.newScheduler()
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("audition module off", func(t *testing.T) {
		a := newTestApp(t, func(cfg *config.Config) {
			cfg.Server.Modules = []string{config.ModuleUser}
			cfg.Workers.Enabled = true
			cfg.RateLimit.Enabled = false
		})

		s, err := a.newScheduler()
		require.NoError(t, err)
		assert.Nil(t, s)
	})
}

func TestRouter_UnknownRoute(t *testing.T) {
	a := newTestApp(t, func(cfg *config.Config) {})

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
