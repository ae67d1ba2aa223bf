package ports

import (
	"context"

	"paypal-relay/internal/domain/model"
)

// Notifier sends notifications to downstream channels (e.g. Discord).
type Notifier interface {
	Send(ctx context.Context, notification model.Notification) error
}

// NotifierProbe checks that the downstream channel is reachable without posting a message.
type NotifierProbe interface {
	Ping(ctx context.Context) error
}
