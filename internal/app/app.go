package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audition_backend/database"
	"audition_backend/internal/auth"
	"audition_backend/internal/config"
	"audition_backend/internal/email"
	"audition_backend/internal/handlers"
	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
	"audition_backend/internal/middleware"
	"audition_backend/internal/repositories"
	"audition_backend/internal/routes"
	"audition_backend/internal/services"
	"audition_backend/internal/social"
	"audition_backend/internal/validator"
	"audition_backend/internal/workers"
	"audition_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

// App - собранный HTTP-сервис с фоновыми задачами
type App struct {
	cfg     *config.Config
	db      *gorm.DB
	deps    services.Dependencies
	router  *gin.Engine
	limiter *middleware.RateLimiter
}

// Run - точка входа cmd/web
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env, "modules", cfg.Server.Modules)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}
	logger.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := New(cfg, db, NewDependencies(cfg))
	if err := a.Serve(ctx); err != nil {
		logger.Fatal("Server error", "error", err)
	}
}

// NewDependencies создает внешние зависимости сервисов по конфигурации
func NewDependencies(cfg *config.Config) services.Dependencies {
	provider := email.NewProvider(cfg.Email)
	if !cfg.Email.Enabled {
		logger.Warn("Email sending is disabled, messages are written to the log")
	}

	return services.Dependencies{
		Tokens:   auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute, cfg.JWT.Issuer),
		Social:   social.NewClient(cfg.Social),
		Notifier: email.NewNotifier(provider, cfg.Email.FrontendURL),
		Metrics:  metrics.New(),
	}
}

func New(cfg *config.Config, db *gorm.DB, deps services.Dependencies) *App {
	a := &App{cfg: cfg, db: db, deps: deps}
	if cfg.RateLimit.Enabled {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	a.router = a.setupRouter()
	return a
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) setupRouter() *gin.Engine {
	serviceContainer := services.NewServiceContainer(a.cfg, a.deps)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New(), a.cfg.Server.Modules)

	router := gin.New()
	router.Use(gin.CustomRecovery(apperrors.RecoveryHandler))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(a.deps.Metrics))
	router.Use(middleware.CORSMiddleware(a.cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(a.db))

	router.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("route", "Route not found"))
	})

	opts := routes.Options{Auth: middleware.AuthMiddleware(a.deps.Tokens)}
	if a.limiter != nil {
		opts.RateLimit = a.limiter.Handler()
	}
	if a.deps.Metrics != nil {
		opts.Metrics = a.deps.Metrics.Handler()
	}
	routes.RegisterRoutes(router, a.cfg, appHandlers, opts)

	return router
}

// newScheduler регистрирует фоновые задачи. Доменные задачи зависят от
// workers.enabled, очистка лимитеров - только от того, включен ли лимит.
// nil, если задач нет.
func (a *App) newScheduler() (*workers.Scheduler, error) {
	s := workers.NewScheduler()

	if a.cfg.Workers.Enabled && a.cfg.ModuleEnabled(config.ModuleAudition) {
		w := workers.NewAuditionWorker(a.db, repositories.NewAuditionRepository(), a.deps.Metrics)
		if err := s.Add(a.cfg.Workers.AuditionSchedule, w); err != nil {
			return nil, err
		}
		o := workers.NewOfferWorker(a.db, repositories.NewOfferRepository(), a.cfg.Workers.OfferTTL, a.deps.Metrics)
		if err := s.Add(a.cfg.Workers.OfferSchedule, o); err != nil {
			return nil, err
		}
	}

	if a.limiter != nil {
		err := s.AddFunc("rate-limit-cleanup", "@every 10m", func() {
			if removed := a.limiter.Cleanup(30 * time.Minute); removed > 0 {
				logger.Debug("Rate limiters cleaned up", "removed", removed)
			}
		})
		if err != nil {
			return nil, err
		}
	}

	if len(s.Jobs()) == 0 {
		return nil, nil
	}
	return s, nil
}

// Serve запускает HTTP-сервер и задачи, останавливает их при отмене ctx
func (a *App) Serve(ctx context.Context) error {
	scheduler, err := a.newScheduler()
	if err != nil {
		return err
	}
	if scheduler != nil {
		scheduler.Start()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port),
		Handler:      a.router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
	return serveErr
}
