// Package gateway - единая точка входа, проксирующая /api/v1 в сервисы user, audition и media.
package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"audition_backend/internal/config"
	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
	"audition_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

// Route - префикс пути и сервис, который его обслуживает
type Route struct {
	Prefix   string
	Upstream string
	Target   string
}

// Routes строит таблицу маршрутизации из конфигурации
func Routes(cfg config.GatewayConfig) []Route {
	return []Route{
		{Prefix: "/api/v1/auth", Upstream: config.ModuleUser, Target: cfg.UserServiceURL},
		{Prefix: "/api/v1/users", Upstream: config.ModuleUser, Target: cfg.UserServiceURL},
		{Prefix: "/api/v1/auditions", Upstream: config.ModuleAudition, Target: cfg.AuditionServiceURL},
		{Prefix: "/api/v1/applications", Upstream: config.ModuleAudition, Target: cfg.AuditionServiceURL},
		{Prefix: "/api/v1/offers", Upstream: config.ModuleAudition, Target: cfg.AuditionServiceURL},
		{Prefix: "/api/v1/videos", Upstream: config.ModuleMedia, Target: cfg.MediaServiceURL},
	}
}

type Gateway struct {
	router  *mux.Router
	handler http.Handler
	metrics *metrics.Metrics
}

func New(cfg config.GatewayConfig, m *metrics.Metrics) (*Gateway, error) {
	g := &Gateway{router: mux.NewRouter(), metrics: m}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Timeout > 0 {
		transport.ResponseHeaderTimeout = cfg.Timeout
	}

	// requestID оборачивает весь роутер, чтобы 404 тоже получали X-Request-ID
	g.handler = g.requestID(g.router)
	g.router.Use(g.instrument)
	g.router.HandleFunc("/health", g.health).Methods(http.MethodGet)
	if m != nil {
		g.router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	for _, route := range Routes(cfg) {
		proxy, err := g.newProxy(route, transport)
		if err != nil {
			return nil, err
		}
		// Сам префикс и все под ним, но не /api/v1/authx
		g.router.Path(route.Prefix).Handler(proxy)
		g.router.PathPrefix(route.Prefix + "/").Handler(proxy)
	}

	g.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, apperrors.NewNotFoundError("gateway", "Route not found"))
	})
	g.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, apperrors.New(apperrors.CodeBadRequest, "gateway", "Method not allowed", http.StatusMethodNotAllowed))
	})

	return g, nil
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.handler.ServeHTTP(w, r)
}

func (g *Gateway) newProxy(route Route, transport http.RoundTripper) (http.Handler, error) {
	target, err := url.Parse(route.Target)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid %s upstream url %q", route.Upstream, route.Target)
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.Transport = transport
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.CtxWithError(r.Context(), "Upstream request failed", err,
			"upstream", route.Upstream,
			"path", r.URL.Path,
		)
		g.metrics.UpstreamError(route.Upstream)
		writeError(w, r, apperrors.New(apperrors.CodeBadGateway, "gateway", "Upstream service unavailable", http.StatusBadGateway))
	}
	return proxy, nil
}

func (g *Gateway) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// requestID проставляет X-Request-ID и передает его в сервис
func (g *Gateway) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

// instrument считает запросы по шаблону маршрута mux
func (g *Gateway) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		g.metrics.RequestStarted()

		next.ServeHTTP(rec, r)

		path := ""
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		g.metrics.RequestFinished(r.Method, path, rec.status, time.Since(start))

		if rec.status >= http.StatusInternalServerError {
			logger.CtxWarn(r.Context(), "Gateway request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
			)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush нужен ReverseProxy для потоковых ответов
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func writeError(w http.ResponseWriter, r *http.Request, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPCode)
	_ = json.NewEncoder(w).Encode(apperrors.NewErrorResponse(appErr, strings.TrimSpace(r.URL.Path)))
}
