package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"paypal-relay/internal/domain/ports"
	"paypal-relay/internal/usecase"
)

// Relayer processes one inbound webhook body.
type Relayer interface {
	Relay(ctx context.Context, body []byte) (usecase.Outcome, error)
}

// RouterConfig holds the HTTP-facing settings of the relay. A zero
// MaxBodyBytes leaves the body unbounded.
type RouterConfig struct {
	WebhookPath  string
	AccessKey    string
	MaxBodyBytes int64
}

// NewRouter wires the relay endpoint. The access key is checked at the engine
// level, so every request, including unknown paths and methods, is rejected
// with 401 before routing decides anything. Mounted at "/", the relay answers
// every path; otherwise only WebhookPath is served and the rest get 404.
func NewRouter(cfg RouterConfig, relay Relayer, logger ports.Logger) *gin.Engine {
	path := cfg.WebhookPath
	if path == "" {
		path = "/"
	}

	r := gin.New()
	// Redirects are answered before middleware runs and would bypass the key check.
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(
		RequestID(),
		AccessLog(logger),
		Recovery(logger),
		AccessKey(cfg.AccessKey, logger),
	)

	relayHandler := RelayHandler(relay, logger, cfg.MaxBodyBytes)
	r.Any(path, relayHandler)

	// Methods outside gin's Any list and, for a root mount, every other path.
	r.NoRoute(func(c *gin.Context) {
		if path == "/" || c.Request.URL.Path == path {
			relayHandler(c)
			return
		}
		c.String(http.StatusNotFound, "Not found")
	})

	return r
}
