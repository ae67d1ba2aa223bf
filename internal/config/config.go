package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration values.
type Config struct {
	DiscordWebhookURL string
	AccessKey         string
	ListenAddr        string
	WebhookPath       string
	BotUsername       string
	RequestTimeout    time.Duration
	MaxBodyBytes      int64
	MaxConnections    int
	WebhookProbeCron  string
	LogLevel          slog.Level
}

const (
	defaultListenAddr     = ":8080"
	defaultWebhookPath    = "/"
	defaultBotUsername    = "PayPal Notification Bot"
	defaultTimeout        = 10 * time.Second
	defaultMaxBodyBytes   = 1 << 20
	defaultMaxConnections = 0
	defaultProbeCron      = "" // disabled
	defaultLogLevel       = "info"
)

// Load builds a Config from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DiscordWebhookURL: strings.TrimSpace(os.Getenv("DISCORD_WEBHOOK_URL")),
		AccessKey:         os.Getenv("ACCESS_KEY"),
		ListenAddr:        getenvDefault("LISTEN_ADDR", defaultListenAddr),
		WebhookPath:       getenvDefault("WEBHOOK_PATH", defaultWebhookPath),
		BotUsername:       getenvDefault("BOT_USERNAME", defaultBotUsername),
		RequestTimeout:    parseDurationDefault("REQUEST_TIMEOUT", defaultTimeout),
		MaxBodyBytes:      int64(parseIntDefault("MAX_BODY_BYTES", defaultMaxBodyBytes)),
		MaxConnections:    parseIntDefault("MAX_CONNECTIONS", defaultMaxConnections),
		WebhookProbeCron:  getenvDefault("WEBHOOK_PROBE_CRON", defaultProbeCron),
	}

	if cfg.DiscordWebhookURL == "" {
		return nil, fmt.Errorf("DISCORD_WEBHOOK_URL is required")
	}

	if cfg.AccessKey == "" {
		return nil, fmt.Errorf("ACCESS_KEY is required")
	}

	level, err := parseLevel(getenvDefault("LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if !strings.HasPrefix(cfg.WebhookPath, "/") {
		cfg.WebhookPath = "/" + cfg.WebhookPath
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	if cfg.MaxConnections < 0 {
		cfg.MaxConnections = defaultMaxConnections
	}

	return cfg, nil
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is invalid: %w", raw, err)
	}
	return level, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
