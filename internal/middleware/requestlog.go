package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ragulator-backend/internal/logger"
)

type RequestLogMiddleware struct {
	log *logger.Logger
}

func NewRequestLogMiddleware(log *logger.Logger) *RequestLogMiddleware {
	middlewareLogger := log.With("Middleware", "RequestLogMiddleware")
	return &RequestLogMiddleware{log: middlewareLogger}
}

func (rl *RequestLogMiddleware) LogRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"elapsed", time.Since(start),
		}
		if status >= 500 {
			rl.log.Error("Request failed", fields...)
		} else if status >= 400 {
			rl.log.Warn("Request rejected", fields...)
		} else {
			rl.log.Info("Request served", fields...)
		}
	}
}
