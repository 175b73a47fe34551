package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yukikurage/smart-todo/internal/logger"
)

const traceIDHeader = "X-Trace-ID"

// TraceID attaches a request-scoped logger carrying a trace_id to the
// request context. An incoming X-Trace-ID header is reused.
func TraceID(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := base.With().Str("trace_id", traceID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		c.Header(traceIDHeader, traceID)
		c.Next()
	}
}

// RequestLogger writes one line per request using the logger set up by TraceID.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		uri := c.Request.RequestURI
		method := c.Request.Method

		c.Next()

		log := logger.FromContext(c.Request.Context())
		var ev *zerolog.Event
		if c.Writer.Status() >= 500 {
			ev = log.Error()
		} else {
			ev = log.Info()
		}

		if username, ok := GetUsername(c); ok {
			ev = ev.Str("username", username)
		}

		ev.Str("uri", uri).
			Str("method", method).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Int("size", c.Writer.Size()).
			Send()
	}
}
