package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/task-project-api/internal/constants"
	apierrors "github.com/yukikurage/task-project-api/internal/errors"
	"github.com/yukikurage/task-project-api/internal/logger"
)

// RequestID reuses the caller's X-Request-ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Header(constants.HeaderRequestID, requestID)
		c.Next()
	}
}

// RequestLogger writes one structured line per request
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		l := log
		if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
			l = l.WithRequestID(requestID)
		}
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		l.LogHTTPRequest(c.Request.Method, path, c.ClientIP(), c.Writer.Status(), durationMs)
	}
}

// Recovery turns a panic in a handler into a 500 response
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("Panic recovered",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(constants.ContextKeyRequestID),
					"panic", r,
				)
				apierrors.InternalError(c, "")
			}
		}()
		c.Next()
	}
}
