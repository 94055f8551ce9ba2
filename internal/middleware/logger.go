package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notevault/core/internal/pkg/requestinfo"
	"go.uber.org/zap"
)

// Logger returns a Gin middleware that logs each request using zap.
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", requestinfo.ClientIP(c.Request.Header)),
		)
	}
}
