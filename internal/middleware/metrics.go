package middleware

import (
	"time"

	"github.com/cleberrangel/burndown-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware registra métricas de cada requisição
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start).Milliseconds()
		success := c.Writer.Status() < 400

		metrics.Get().IncrementRequests(success, latency)
	}
}
