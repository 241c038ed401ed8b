// Package metrics собирает Prometheus-метрики HTTP-слоя, бизнес-операций
// и фоновых задач. Все методы безопасны для nil *Metrics.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "audition"

type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	usersRegistered     *prometheus.CounterVec
	socialLogins        *prometheus.CounterVec
	applicationsCreated prometheus.Counter
	screeningResults    *prometheus.CounterVec
	offersCreated       prometheus.Counter
	offerResponses      *prometheus.CounterVec
	videoViews          prometheus.Counter

	workerRuns     *prometheus.CounterVec
	workerAffected *prometheus.CounterVec

	upstreamErrors *prometheus.CounterVec
}

// New создает отдельный реестр, чтобы несколько экземпляров (тесты, gateway)
// не конфликтовали при регистрации.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),

		usersRegistered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "users_registered_total",
			Help:      "Registered users by type.",
		}, []string{"user_type"}),
		socialLogins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "social_logins_total",
			Help:      "Social login attempts by provider and outcome.",
		}, []string{"provider", "success"}),
		applicationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "applications",
			Name:      "created_total",
			Help:      "Applications submitted.",
		}),
		screeningResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "applications",
			Name:      "screening_results_total",
			Help:      "Screening results recorded by round and result.",
		}, []string{"round", "result"}),
		offersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "offers",
			Name:      "created_total",
			Help:      "Offers sent by businesses.",
		}),
		offerResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "offers",
			Name:      "responses_total",
			Help:      "Offer responses by resulting status.",
		}, []string{"status"}),
		videoViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "videos",
			Name:      "views_total",
			Help:      "Video views counted.",
		}),

		workerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workers",
			Name:      "runs_total",
			Help:      "Background job runs by worker and outcome.",
		}, []string{"worker", "success"}),
		workerAffected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workers",
			Name:      "affected_rows_total",
			Help:      "Rows changed by background jobs.",
		}, []string{"worker"}),

		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "upstream_errors_total",
			Help:      "Proxy errors by upstream.",
		}, []string{"upstream"}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.usersRegistered,
		m.socialLogins,
		m.applicationsCreated,
		m.screeningResults,
		m.offersCreated,
		m.offerResponses,
		m.videoViews,
		m.workerRuns,
		m.workerAffected,
		m.upstreamErrors,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler отдает метрики реестра
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.httpInFlight.Inc()
}

// RequestFinished - path должен быть шаблоном маршрута, а не сырым URL
func (m *Metrics) RequestFinished(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpInFlight.Dec()
	if path == "" {
		path = "unmatched"
	}
	method = strings.ToUpper(method)
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) UserRegistered(userType string) {
	if m == nil {
		return
	}
	m.usersRegistered.WithLabelValues(userType).Inc()
}

func (m *Metrics) SocialLogin(provider string, success bool) {
	if m == nil {
		return
	}
	m.socialLogins.WithLabelValues(provider, strconv.FormatBool(success)).Inc()
}

func (m *Metrics) ApplicationCreated() {
	if m == nil {
		return
	}
	m.applicationsCreated.Inc()
}

func (m *Metrics) ScreeningResult(round, result string) {
	if m == nil {
		return
	}
	m.screeningResults.WithLabelValues(round, result).Inc()
}

func (m *Metrics) OfferCreated() {
	if m == nil {
		return
	}
	m.offersCreated.Inc()
}

func (m *Metrics) OfferResponded(status string) {
	if m == nil {
		return
	}
	m.offerResponses.WithLabelValues(status).Inc()
}

func (m *Metrics) VideoViewed() {
	if m == nil {
		return
	}
	m.videoViews.Inc()
}

// WorkerRun фиксирует запуск фоновой задачи и число измененных строк
func (m *Metrics) WorkerRun(worker string, affected int64, err error) {
	if m == nil {
		return
	}
	m.workerRuns.WithLabelValues(worker, strconv.FormatBool(err == nil)).Inc()
	if affected > 0 {
		m.workerAffected.WithLabelValues(worker).Add(float64(affected))
	}
}

func (m *Metrics) UpstreamError(upstream string) {
	if m == nil {
		return
	}
	m.upstreamErrors.WithLabelValues(upstream).Inc()
}
