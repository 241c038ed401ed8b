package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"audition_backend/internal/config"
	"audition_backend/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstream(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", name)
		w.Header().Set("X-Seen-Request-ID", r.Header.Get(requestIDHeader))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"path":"` + r.URL.Path + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGateway(t *testing.T, media string) *Gateway {
	t.Helper()
	user := upstream(t, "user")
	audition := upstream(t, "audition")

	g, err := New(config.GatewayConfig{
		UserServiceURL:     user.URL,
		AuditionServiceURL: audition.URL,
		MediaServiceURL:    media,
	}, metrics.New())
	require.NoError(t, err)
	return g
}

func TestGateway_RoutesByPrefix(t *testing.T) {
	g := newTestGateway(t, upstream(t, "media").URL)

	cases := map[string]string{
		"/api/v1/auth/login":                    "user",
		"/api/v1/auditions":                     "audition",
		"/api/v1/applications/abc/final-result": "audition",
		"/api/v1/offers/users/u1":               "audition",
		"/api/v1/videos/v1/like":                "media",
	}
	for path, want := range cases {
		rec := httptest.NewRecorder()
		g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, rec.Header().Get("X-Upstream"), path)
	}
}

func TestGateway_PropagatesRequestID(t *testing.T) {
	g := newTestGateway(t, upstream(t, "media").URL)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil))
	id := rec.Header().Get(requestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, rec.Header().Get("X-Seen-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Seen-Request-ID"))
}

func TestGateway_UnknownRoute(t *testing.T) {
	g := newTestGateway(t, upstream(t, "media").URL)

	for _, path := range []string{"/api/v1/unknown", "/api/v1/authx"} {
		rec := httptest.NewRecorder()
		g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code, path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(404), body["status"])
		assert.Equal(t, path, body["path"])
		assert.NotEmpty(t, body["timestamp"])
	}
}

func TestGateway_UpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	g := newTestGateway(t, deadURL)

	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/videos/v1", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Upstream service unavailable", body["message"])
	assert.Equal(t, "BAD_GATEWAY", body["code"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestNew_InvalidUpstream(t *testing.T) {
	_, err := New(config.GatewayConfig{UserServiceURL: "::bad"}, nil)
	assert.Error(t, err)
}
