package middleware

import (
	"time"

	"github.com/OldStager01/attrition-advisor/internal/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger writes one entry per request. Successful hits on quietPaths
// (probes, scrapes) are logged at debug level.
func RequestLogger(quietPaths ...string) gin.HandlerFunc {
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		entry := logger.WithFields(map[string]interface{}{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"route":      route,
			"latency_ms": time.Since(start).Milliseconds(),
			"bytes":      c.Writer.Size(),
			"ip":         c.ClientIP(),
		})
		if traceID := GetTraceID(c); traceID != "" {
			entry = entry.WithField("trace_id", traceID)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("server error")
		case status >= 400:
			entry.Warn("client error")
		case quiet[path]:
			entry.Debug("request completed")
		default:
			entry.Info("request completed")
		}
	}
}
