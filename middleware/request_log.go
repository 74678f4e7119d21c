// Package middleware file: middleware/request_log.go
package middleware

import (
	"time"

	"catering-admin/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger writes one structured line per request.
// Health checks are only logged at debug level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		health := c.Request.URL.Path == "/health"
		if health && !logger.Enabled(zapcore.DebugLevel) {
			return
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if u := CurrentUser(c); u != nil {
			fields = append(fields, zap.String("admin", u.Email))
		}

		z := logger.Z()
		switch {
		case health:
			z.Debug("request", fields...)
		case c.Writer.Status() >= 500:
			z.Error("request", append(fields, zap.String("errors", c.Errors.String()))...)
		default:
			z.Info("request", fields...)
		}
	}
}
