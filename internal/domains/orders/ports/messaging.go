package ports

import (
	"context"
	"time"
)

// Message is one queue delivery: an opaque envelope body plus the receipt
// handle that authorizes deleting this particular delivery attempt. The
// handle is not the message identity; it goes stale after deletion or after
// the queue redelivers the message.
type Message struct {
	Body          string
	ReceiptHandle string
}

// Event is a structured event-bus entry.
type Event struct {
	Source     string
	DetailType string
	Detail     string
}

// Queue is the notification queue consumed by the pipeline. Receive blocks up
// to wait for at most maxMessages deliveries; Delete acknowledges a single
// delivery by its receipt handle.
type Queue interface {
	Receive(ctx context.Context, maxMessages int32, wait time.Duration) ([]Message, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// Topic is the broadcast publish/subscribe channel for serialized payloads.
type Topic interface {
	Publish(ctx context.Context, payload string) error
}

// EventBus accepts structured events for rule-based routing.
type EventBus interface {
	PutEvent(ctx context.Context, event Event) error
}
