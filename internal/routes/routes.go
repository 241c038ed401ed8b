package routes

import (
	"net/http"

	"audition_backend/internal/config"
	"audition_backend/internal/handlers"
	"audition_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Options - middleware и обработчики, которые собирает app
type Options struct {
	Auth      gin.HandlerFunc
	RateLimit gin.HandlerFunc // nil, если лимит выключен
	Metrics   http.Handler
}

// RegisterRoutes регистрирует маршруты модулей, включенных в конфигурации
func RegisterRoutes(router *gin.Engine, cfg *config.Config, h *handlers.AppHandlers, opts Options) {
	h.HealthHandler.RegisterRoutes(router)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	var limiters []gin.HandlerFunc
	if opts.RateLimit != nil {
		limiters = append(limiters, opts.RateLimit)
	}

	api := router.Group("/api/v1")
	{
		if cfg.ModuleEnabled(config.ModuleUser) {
			h.AuthHandler.RegisterRoutes(api, opts.Auth, limiters...)
		}
		if cfg.ModuleEnabled(config.ModuleAudition) {
			h.AuditionHandler.RegisterRoutes(api, opts.Auth)
			h.ApplicationHandler.RegisterRoutes(api, opts.Auth)
			h.OfferHandler.RegisterRoutes(api, opts.Auth)
		}
		if cfg.ModuleEnabled(config.ModuleMedia) {
			h.VideoHandler.RegisterRoutes(api, opts.Auth)
		}
	}

	logger.Info("Routes registered", "modules", cfg.Server.Modules)
}
