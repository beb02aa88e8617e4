package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/logger"
)

// Logging logs HTTP requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs route, duration and status for each request.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}

	l.logger.Info("HTTP request started",
		"method", c.Request.Method,
		"route", route,
		"start_time", start.Format(time.RFC3339))

	c.Next()

	status := c.Writer.Status()
	l.logger.Info("HTTP request completed",
		"method", c.Request.Method,
		"route", route,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", status)

	if len(c.Errors) > 0 {
		l.logger.Error("HTTP request failed",
			"method", c.Request.Method,
			"route", route,
			"error", c.Errors.String(),
			"status", status)
	}
}
