package model

// EventPaymentSaleCompleted is the only event type relayed downstream.
const EventPaymentSaleCompleted = "PAYMENT.SALE.COMPLETED"

// PaymentEvent is the subset of a payment provider webhook the relay cares about.
// Only EventType is populated for event types other than EventPaymentSaleCompleted.
type PaymentEvent struct {
	EventType      string
	TransactionID  string
	Currency       string
	Total          string
	PayerFirstName string
}

// IsSaleCompleted reports whether the event describes a completed sale.
func (e PaymentEvent) IsSaleCompleted() bool {
	return e.EventType == EventPaymentSaleCompleted
}
