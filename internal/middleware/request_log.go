package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

// RequestLogger logs one line per request on the shared zap logger.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	reqLog := log.With("middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		reqLog.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
