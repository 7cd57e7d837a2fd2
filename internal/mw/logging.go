package mw

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request. user extracts the caller id for
// the log entry and may return "".
func RequestLogger(log logrus.FieldLogger, user func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		}
		if user != nil {
			if id := user(c); id != "" {
				fields["user_id"] = id
			}
		}
		if fields["path"] == "" {
			fields["path"] = c.Request.URL.Path
		}

		entry := log.WithFields(fields)
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		switch s := c.Writer.Status(); {
		case s >= 500:
			entry.Error("request failed")
		case s >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}
