//go:build wireinject

package di

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"paypal-relay/internal/adapter/discord"
	"paypal-relay/internal/adapter/httpapi"
	"paypal-relay/internal/adapter/logging"
	"paypal-relay/internal/adapter/paypal"
	"paypal-relay/internal/app"
	"paypal-relay/internal/config"
	"paypal-relay/internal/domain/ports"
	"paypal-relay/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		paypal.NewDecoder,
		wire.Bind(new(ports.PaymentEventDecoder), new(*paypal.Decoder)),
		provideWebhook,
		wire.Bind(new(ports.Notifier), new(*discord.Webhook)),
		wire.Bind(new(ports.NotifierProbe), new(*discord.Webhook)),
		provideRelayConfig,
		usecase.NewPaymentRelay,
		wire.Bind(new(httpapi.Relayer), new(*usecase.PaymentRelay)),
		provideRouterConfig,
		httpapi.NewRouter,
		wire.Bind(new(http.Handler), new(*gin.Engine)),
		provideAppOptions,
		app.New,
	)
	return nil, nil
}
