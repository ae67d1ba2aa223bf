package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"paypal-relay/internal/domain/ports"
	"paypal-relay/internal/domain/relayerr"
	"paypal-relay/internal/usecase"
)

const (
	bodyUnauthorized     = "Unauthorized"
	bodyMethodNotAllowed = "Method not allowed"
	bodyUnsupportedEvent = "Event type not supported"
	bodyDelivered        = "Notification sent successfully"
	bodyProcessingError  = "Error processing webhook"
)

// RelayHandler serves the inbound webhook. All failures after the method
// check share one response: they are logged with their kind and reported as
// a bare 500 so the provider redelivers.
func RelayHandler(relay Relayer, logger ports.Logger, maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if c.Request.Method != http.MethodPost {
			err := relayerr.MethodNotAllowed(c.Request.Method)
			logger.Debug(ctx, "rejected webhook",
				"error", err,
				"kind", relayerr.TextCode(err),
				"request_id", RequestIDFrom(c),
			)
			c.String(http.StatusMethodNotAllowed, bodyMethodNotAllowed)
			return
		}

		reader := c.Request.Body
		if maxBodyBytes > 0 {
			reader = http.MaxBytesReader(c.Writer, reader, maxBodyBytes)
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				err = relayerr.MalformedEvent(err, "webhook body too large", map[string]any{"limit": tooLarge.Limit})
			} else {
				err = relayerr.Internal(err, "read webhook body")
			}
			fail(c, logger, err)
			return
		}

		outcome, err := relay.Relay(ctx, body)
		if err != nil {
			fail(c, logger, err)
			return
		}

		switch outcome {
		case usecase.OutcomeDelivered:
			c.String(http.StatusOK, bodyDelivered)
		default:
			c.String(http.StatusOK, bodyUnsupportedEvent)
		}
	}
}

func fail(c *gin.Context, logger ports.Logger, err error) {
	logger.Error(c.Request.Context(), "webhook processing failed",
		"error", err,
		"kind", relayerr.TextCode(err),
		"request_id", RequestIDFrom(c),
	)
	c.String(http.StatusInternalServerError, bodyProcessingError)
}
