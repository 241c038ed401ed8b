package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RequestCounters(t *testing.T) {
	m := New()

	m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))

	m.RequestFinished("get", "/api/v1/videos/:id", http.StatusOK, 20*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/videos/:id", "200")))

	m.RequestStarted()
	m.RequestFinished("GET", "", http.StatusNotFound, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_DomainCounters(t *testing.T) {
	m := New()

	m.ApplicationCreated()
	m.OfferCreated()
	m.OfferResponded("ACCEPTED")
	m.VideoViewed()
	m.VideoViewed()
	m.WorkerRun("offer-expiry", 3, nil)
	m.WorkerRun("offer-expiry", 0, errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.applicationsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.offerResponses.WithLabelValues("ACCEPTED")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.videoViews))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.workerRuns.WithLabelValues("offer-expiry", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.workerRuns.WithLabelValues("offer-expiry", "false")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.workerAffected.WithLabelValues("offer-expiry")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RequestStarted()
		m.RequestFinished("GET", "/", 200, time.Second)
		m.OfferCreated()
		m.WorkerRun("x", 1, nil)
		m.UpstreamError("user")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.OfferCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "audition_offers_created_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
