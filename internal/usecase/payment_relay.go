package usecase

import (
	"context"
	"fmt"
	"time"

	"paypal-relay/internal/domain/model"
	"paypal-relay/internal/domain/ports"
	"paypal-relay/internal/domain/relayerr"
)

const (
	defaultBotUsername = "PayPal Notification Bot"
	paymentTitle       = "New Payment Received!"
	paymentDescription = "A payment has been successfully completed."
	paymentColor       = 3066993 // green
	fieldPayerName     = "Payer Name"
	fieldAmount        = "Amount"
	fieldTransactionID = "Transaction ID"
)

// Outcome describes how a relayed webhook was handled.
type Outcome int

const (
	// OutcomeIgnored means the event type is not relayed.
	OutcomeIgnored Outcome = iota
	// OutcomeDelivered means the notification was accepted downstream.
	OutcomeDelivered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeDelivered:
		return "delivered"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// PaymentRelayConfig controls presentation details of relayed notifications.
type PaymentRelayConfig struct {
	BotUsername string
}

// PaymentRelay turns completed-payment webhooks into chat notifications.
type PaymentRelay struct {
	decoder  ports.PaymentEventDecoder
	notifier ports.Notifier
	logger   ports.Logger
	username string
	now      func() time.Time
}

// NewPaymentRelay constructs a PaymentRelay use case.
func NewPaymentRelay(
	decoder ports.PaymentEventDecoder,
	notifier ports.Notifier,
	logger ports.Logger,
	cfg PaymentRelayConfig,
) *PaymentRelay {
	username := cfg.BotUsername
	if username == "" {
		username = defaultBotUsername
	}
	return &PaymentRelay{
		decoder:  decoder,
		notifier: notifier,
		logger:   logger,
		username: username,
		now:      time.Now,
	}
}

// Relay decodes body and forwards completed sales to the notifier. Every
// returned error is a relayerr kind.
func (r *PaymentRelay) Relay(ctx context.Context, body []byte) (Outcome, error) {
	event, err := r.decoder.Decode(body)
	if err != nil {
		return OutcomeIgnored, err
	}

	if !event.IsSaleCompleted() {
		r.logger.Info(ctx, "ignoring unsupported event", "event_type", event.EventType)
		return OutcomeIgnored, nil
	}

	notification := r.buildNotification(event)
	if err := r.notifier.Send(ctx, notification); err != nil {
		return OutcomeIgnored, relayerr.NotifierFailed(err)
	}

	r.logger.Info(ctx, "payment notification relayed", "transaction_id", event.TransactionID)
	return OutcomeDelivered, nil
}

func (r *PaymentRelay) buildNotification(event model.PaymentEvent) model.Notification {
	return model.Notification{
		Username:    r.username,
		Title:       paymentTitle,
		Description: paymentDescription,
		Fields: []model.NotificationField{
			{Name: fieldPayerName, Value: event.PayerFirstName, Inline: true},
			{Name: fieldAmount, Value: formatAmount(event), Inline: true},
			{Name: fieldTransactionID, Value: event.TransactionID, Inline: false},
		},
		Color:     paymentColor,
		Timestamp: r.now().UTC(),
	}
}

func formatAmount(event model.PaymentEvent) string {
	return fmt.Sprintf("%s %s", event.Total, event.Currency)
}
