package handlers

import (
	"context"
	"net/http"
	"time"

	"audition_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
	modules []string
}

func NewHealthHandler(base *BaseHandler, modules []string) *HealthHandler {
	return &HealthHandler{BaseHandler: base, modules: modules}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
}

// Health проверяет доступность базы
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, database := "ok", "up"
	code := http.StatusOK

	sqlDB, err := h.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.CtxWithError(ctx, "Health check: database unreachable", err)
		status, database = "degraded", "down"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": database,
		"modules":  h.modules,
		"time":     time.Now().UTC(),
	})
}
