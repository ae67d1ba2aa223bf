package httpapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"paypal-relay/internal/domain/ports"
	"paypal-relay/internal/domain/relayerr"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDCtxKey = "request_id"
	accessKeyParam  = "access_key"
)

// RequestID tags every request with an ID, reusing the caller's header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDCtxKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the ID assigned by RequestID.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDCtxKey)
}

// AccessLog writes one line per request. The query string is left out
// because it carries the access key.
func AccessLog(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", RequestIDFrom(c),
		)
	}
}

// Recovery turns a panic inside the relay into the generic processing error.
func Recovery(logger ports.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "panic while processing webhook",
			"panic", recovered,
			"kind", relayerr.TextCodeInternal,
			"request_id", RequestIDFrom(c),
		)
		c.String(http.StatusInternalServerError, bodyProcessingError)
		c.Abort()
	})
}

// AccessKey rejects requests whose access_key query parameter does not equal expected.
func AccessKey(expected string, logger ports.Logger) gin.HandlerFunc {
	want := []byte(expected)
	return func(c *gin.Context) {
		got := []byte(c.Query(accessKeyParam))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			err := relayerr.Unauthorized()
			logger.Debug(c.Request.Context(), "rejected webhook",
				"error", err,
				"kind", relayerr.TextCode(err),
				"client_ip", c.ClientIP(),
				"request_id", RequestIDFrom(c),
			)
			c.String(http.StatusUnauthorized, bodyUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
