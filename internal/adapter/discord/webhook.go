package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"paypal-relay/internal/domain/model"
	"paypal-relay/internal/domain/ports"
)

// timestampLayout matches the ISO-8601 form Discord echoes back (UTC, milliseconds).
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Webhook is a Discord webhook notifier.
type Webhook struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger
}

var (
	_ ports.Notifier      = (*Webhook)(nil)
	_ ports.NotifierProbe = (*Webhook)(nil)
)

// NewWebhook creates a new Discord webhook notifier.
func NewWebhook(webhookURL string, timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type payload struct {
	Username string  `json:"username,omitempty"`
	Embeds   []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Fields      []embedField `json:"fields,omitempty"`
	Color       int          `json:"color"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Send posts the notification to Discord.
func (w *Webhook) Send(ctx context.Context, notification model.Notification) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	body, err := json.Marshal(buildPayload(notification))
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord webhook failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	w.logger.Info(ctx, "notification sent to discord", "status", resp.StatusCode)
	return nil
}

// Ping fetches the webhook object, which Discord serves without posting a message.
func (w *Webhook) Ping(ctx context.Context) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.webhookURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook probe returned status %d", resp.StatusCode)
	}
	return nil
}

func buildPayload(notification model.Notification) payload {
	e := embed{
		Title:       truncate(notification.Title, 256),
		Description: truncate(notification.Description, 4096),
		Fields:      convertFields(notification.Fields),
		Color:       notification.Color,
	}
	if !notification.Timestamp.IsZero() {
		e.Timestamp = notification.Timestamp.UTC().Format(timestampLayout)
	}

	return payload{
		Username: truncate(notification.Username, 80),
		Embeds:   []embed{e},
	}
}

func convertFields(fields []model.NotificationField) []embedField {
	if len(fields) == 0 {
		return nil
	}

	result := make([]embedField, 0, len(fields))
	for _, field := range fields {
		result = append(result, embedField{
			Name:   truncate(field.Name, 256),
			Value:  truncate(field.Value, 1024),
			Inline: field.Inline,
		})
	}

	return result
}

// truncate caps value at limit characters, as Discord counts them.
func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return strings.TrimSpace(string(runes[:limit-3])) + "..."
}
