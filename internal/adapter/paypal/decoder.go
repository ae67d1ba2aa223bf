package paypal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"paypal-relay/internal/domain/model"
	"paypal-relay/internal/domain/ports"
	"paypal-relay/internal/domain/relayerr"
)

// Decoder parses PayPal webhook notifications.
type Decoder struct{}

var _ ports.PaymentEventDecoder = (*Decoder)(nil)

// NewDecoder creates a new PayPal webhook decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

type envelope struct {
	EventType json.RawMessage `json:"event_type"`
	Resource  json.RawMessage `json:"resource"`
}

type saleResource struct {
	ID     *string `json:"id"`
	Amount *struct {
		Currency *string         `json:"currency"`
		Total    json.RawMessage `json:"total"`
	} `json:"amount"`
	Payer *struct {
		PayerInfo *struct {
			FirstName *string `json:"first_name"`
		} `json:"payer_info"`
	} `json:"payer"`
}

// Decode parses body into a PaymentEvent. The resource is only inspected for
// completed sales, so other event types never fail on resource shape. Valid
// JSON that is not an object, or whose event_type is not a string, decodes to
// an unsupported event.
func (d *Decoder) Decode(body []byte) (model.PaymentEvent, error) {
	if isNull(body) {
		return model.PaymentEvent{}, relayerr.MalformedEvent(nil, "empty webhook body", nil)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Syntax is checked before types, so a type error means valid JSON
		// with a non-object top level.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return model.PaymentEvent{}, nil
		}
		return model.PaymentEvent{}, relayerr.MalformedEvent(err, "invalid webhook json", nil)
	}

	event := model.PaymentEvent{EventType: eventType(env.EventType)}
	if !event.IsSaleCompleted() {
		return event, nil
	}

	if isNull(env.Resource) {
		return model.PaymentEvent{}, missingField("resource")
	}

	var res saleResource
	if err := json.Unmarshal(env.Resource, &res); err != nil {
		return model.PaymentEvent{}, relayerr.MalformedEvent(err, "invalid sale resource", nil)
	}

	if res.ID == nil || *res.ID == "" {
		return model.PaymentEvent{}, missingField("resource.id")
	}
	if res.Amount == nil {
		return model.PaymentEvent{}, missingField("resource.amount")
	}
	if res.Amount.Currency == nil {
		return model.PaymentEvent{}, missingField("resource.amount.currency")
	}
	total, err := decodeTotal(res.Amount.Total)
	if err != nil {
		return model.PaymentEvent{}, err
	}
	if res.Payer == nil || res.Payer.PayerInfo == nil || res.Payer.PayerInfo.FirstName == nil || *res.Payer.PayerInfo.FirstName == "" {
		return model.PaymentEvent{}, missingField("resource.payer.payer_info.first_name")
	}

	event.TransactionID = *res.ID
	event.Currency = *res.Amount.Currency
	event.Total = total
	event.PayerFirstName = *res.Payer.PayerInfo.FirstName
	return event, nil
}

// eventType returns the string value of raw, or its JSON text when it is not
// a string. Non-string values can never match a known event type.
func eventType(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(bytes.TrimSpace(raw))
}

// decodeTotal accepts either a JSON string, used verbatim, or a JSON number,
// rendered the way JavaScript stringifies numbers ("10.50" becomes "10.5").
func decodeTotal(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", missingField("resource.amount.total")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", relayerr.MalformedEvent(
			fmt.Errorf("decode total: %w", err),
			"resource.amount.total must be a string or number",
			map[string]any{"field": "resource.amount.total"},
		)
	}
	return formatNumber(num), nil
}

// formatNumber matches JavaScript's Number#toString for finite values:
// shortest round-trip digits, exponent form outside [1e-6, 1e21).
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
		return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func missingField(field string) error {
	return relayerr.MalformedEvent(nil, field+" is required", map[string]any{"field": field})
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
