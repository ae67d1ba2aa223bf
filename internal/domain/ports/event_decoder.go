package ports

import "paypal-relay/internal/domain/model"

// PaymentEventDecoder turns a raw webhook body into a PaymentEvent.
type PaymentEventDecoder interface {
	Decode(body []byte) (model.PaymentEvent, error)
}
