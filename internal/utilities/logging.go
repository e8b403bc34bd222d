package utilities

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoggerKey is the gin context key under which the request scoped logger is stored.
const LoggerKey = "logger"

// SetLogger attaches a request scoped logger to the gin context.
func SetLogger(c *gin.Context, logger *slog.Logger) {
	c.Set(LoggerKey, logger)
}

// LoggerFrom returns the request scoped logger, falling back to slog.Default
// when no middleware attached one.
func LoggerFrom(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if logger, ok := v.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// InternalError logs the failure with its cause and replies with a generic
// 500 body. The cause never reaches the client.
func InternalError(c *gin.Context, action string, err error) {
	LoggerFrom(c).Error("internal error", "action", action, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
