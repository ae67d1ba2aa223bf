package di

import (
	"log/slog"
	"os"

	"paypal-relay/internal/adapter/discord"
	"paypal-relay/internal/adapter/httpapi"
	"paypal-relay/internal/adapter/logging"
	"paypal-relay/internal/app"
	"paypal-relay/internal/config"
	"paypal-relay/internal/domain/ports"
	"paypal-relay/internal/usecase"
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stdout, cfg.LogLevel)
}

func provideWebhook(cfg *config.Config, logger ports.Logger) *discord.Webhook {
	return discord.NewWebhook(cfg.DiscordWebhookURL, cfg.RequestTimeout, logger)
}

func provideRelayConfig(cfg *config.Config) usecase.PaymentRelayConfig {
	return usecase.PaymentRelayConfig{
		BotUsername: cfg.BotUsername,
	}
}

func provideRouterConfig(cfg *config.Config) httpapi.RouterConfig {
	return httpapi.RouterConfig{
		WebhookPath:  cfg.WebhookPath,
		AccessKey:    cfg.AccessKey,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
}

func provideAppOptions(cfg *config.Config) app.Options {
	return app.Options{
		ListenAddr:     cfg.ListenAddr,
		MaxConnections: cfg.MaxConnections,
		ProbeSchedule:  cfg.WebhookProbeCron,
	}
}
