package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyvault/skyvault-server/internal/logger"
)

// RequestLogging logs method, path, status and duration for each request.
func RequestLogging(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
