package middleware

import (
	"time"

	"audition_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware считает запросы по шаблону маршрута, чтобы id в пути
// не раздували число серий.
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RequestStarted()

		c.Next()

		m.RequestFinished(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
