package middleware

import (
	"strconv"
	"time"

	"arcade_hub/internal/logger"

	"github.com/gin-gonic/gin"
)

// Observe records request metrics and logs every request at debug level,
// server errors at error level.
func Observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(status/100)+"xx").Inc()
		HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(elapsed.Seconds())

		args := []any{"method", c.Request.Method, "route", route, "status", status, "elapsed", elapsed}
		if status >= 500 {
			logger.Error("request failed", append(args, "errors", c.Errors.String())...)
			return
		}
		logger.Debug("request", args...)
	}
}
