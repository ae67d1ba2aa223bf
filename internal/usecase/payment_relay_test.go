package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"paypal-relay/internal/adapter/logging"
	"paypal-relay/internal/adapter/paypal"
	"paypal-relay/internal/domain/model"
	"paypal-relay/internal/domain/relayerr"
)

type stubNotifier struct {
	sent []model.Notification
	err  error
}

func (s *stubNotifier) Send(_ context.Context, n model.Notification) error {
	s.sent = append(s.sent, n)
	return s.err
}

type stubDecoder struct {
	event model.PaymentEvent
	err   error
}

func (s stubDecoder) Decode([]byte) (model.PaymentEvent, error) {
	return s.event, s.err
}

const completedSale = `{"event_type":"PAYMENT.SALE.COMPLETED","resource":{"id":"TXN123","amount":{"currency":"USD","total":"9.99"},"payer":{"payer_info":{"first_name":"Alex"}}}}`

func newRelay(notifier *stubNotifier) *PaymentRelay {
	relay := NewPaymentRelay(paypal.NewDecoder(), notifier, logging.New(nil), PaymentRelayConfig{})
	relay.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }
	return relay
}

func TestRelay_CompletedSaleBuildsNotification(t *testing.T) {
	notifier := &stubNotifier{}
	relay := newRelay(notifier)

	outcome, err := relay.Relay(context.Background(), []byte(completedSale))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeDelivered {
		t.Fatalf("outcome = %s", outcome)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}

	n := notifier.sent[0]
	if n.Username != "PayPal Notification Bot" {
		t.Fatalf("username = %q", n.Username)
	}
	if n.Title != "New Payment Received!" || n.Description != "A payment has been successfully completed." {
		t.Fatalf("title/description = %q / %q", n.Title, n.Description)
	}
	if n.Color != 3066993 {
		t.Fatalf("color = %d", n.Color)
	}
	if !n.Timestamp.Equal(time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)) || n.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp = %v", n.Timestamp)
	}

	want := []model.NotificationField{
		{Name: "Payer Name", Value: "Alex", Inline: true},
		{Name: "Amount", Value: "9.99 USD", Inline: true},
		{Name: "Transaction ID", Value: "TXN123", Inline: false},
	}
	if len(n.Fields) != len(want) {
		t.Fatalf("fields = %v", n.Fields)
	}
	for i := range want {
		if n.Fields[i] != want[i] {
			t.Fatalf("field %d = %+v, want %+v", i, n.Fields[i], want[i])
		}
	}
}

func TestRelay_UnsupportedEventIsIgnored(t *testing.T) {
	notifier := &stubNotifier{}
	relay := newRelay(notifier)

	outcome, err := relay.Relay(context.Background(), []byte(`{"event_type":"PAYMENT.SALE.DENIED","resource":{}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeIgnored {
		t.Fatalf("outcome = %s", outcome)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("expected no notification, got %d", len(notifier.sent))
	}
}

func TestRelay_MalformedBodyNeverReachesNotifier(t *testing.T) {
	notifier := &stubNotifier{}
	relay := newRelay(notifier)

	_, err := relay.Relay(context.Background(), []byte(`{"event_type":`))
	if !relayerr.Is(err, relayerr.TextCodeMalformedEvent) {
		t.Fatalf("expected malformed event, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatal("notifier must not be called for malformed input")
	}
}

func TestRelay_NotifierFailureIsWrapped(t *testing.T) {
	notifier := &stubNotifier{err: errors.New("discord webhook failed with status 500")}
	relay := newRelay(notifier)

	outcome, err := relay.Relay(context.Background(), []byte(completedSale))
	if !relayerr.Is(err, relayerr.TextCodeNotifierFailed) {
		t.Fatalf("expected notifier failure, got %v", err)
	}
	if outcome == OutcomeDelivered {
		t.Fatal("failed delivery reported as delivered")
	}
}

func TestRelay_DuplicateEventsAreNotDeduplicated(t *testing.T) {
	notifier := &stubNotifier{}
	relay := newRelay(notifier)

	for i := 0; i < 2; i++ {
		if _, err := relay.Relay(context.Background(), []byte(completedSale)); err != nil {
			t.Fatalf("relay %d: %v", i, err)
		}
	}
	if len(notifier.sent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.sent))
	}
}

func TestRelay_CustomUsernameAndDecoderError(t *testing.T) {
	notifier := &stubNotifier{}
	relay := NewPaymentRelay(
		stubDecoder{event: model.PaymentEvent{
			EventType:      model.EventPaymentSaleCompleted,
			TransactionID:  "T9",
			Currency:       "GBP",
			Total:          "1.00",
			PayerFirstName: "Robin",
		}},
		notifier,
		logging.New(nil),
		PaymentRelayConfig{BotUsername: "Sales"},
	)

	if _, err := relay.Relay(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifier.sent[0].Username != "Sales" {
		t.Fatalf("username = %q", notifier.sent[0].Username)
	}
	if notifier.sent[0].Fields[1].Value != "1.00 GBP" {
		t.Fatalf("amount = %q", notifier.sent[0].Fields[1].Value)
	}

	decodeErr := relayerr.MalformedEvent(nil, "resource.id is required", nil)
	relay.decoder = stubDecoder{err: decodeErr}
	if _, err := relay.Relay(context.Background(), nil); !errors.Is(err, decodeErr) {
		t.Fatalf("decoder error not propagated: %v", err)
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomeIgnored.String() != "ignored" || OutcomeDelivered.String() != "delivered" {
		t.Fatal("unexpected outcome names")
	}
	if Outcome(9).String() != "outcome(9)" {
		t.Fatalf("unknown outcome = %q", Outcome(9).String())
	}
}
