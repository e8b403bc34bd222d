package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keshavbardwaj1348/job-portal-backend/internal/utilities"
)

// RequestLogger attaches a request scoped logger to the context and emits one
// line per completed request. Handlers retrieve the logger through
// utilities.LoggerFrom.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestLogger := logger.With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		utilities.SetLogger(c, requestLogger)

		start := time.Now()
		c.Next()

		requestLogger.Info("request completed",
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
