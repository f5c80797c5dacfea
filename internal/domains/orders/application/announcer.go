package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

const (
	// EventSource tags every order event emitted to the bus.
	EventSource = "order.service"
	// EventDetailTypeCreated is the detail-type of the creation event.
	EventDetailTypeCreated = "OrderCreated"
)

var _ ports.Announcer = (*InlineAnnouncer)(nil)

// InlineAnnouncer fans the payload out to both broadcast sinks in-process.
// Both sinks are always attempted; failures are joined so the caller sees
// every sink that missed the event rather than only the first.
type InlineAnnouncer struct {
	topic ports.Topic
	bus   ports.EventBus
}

// NewInlineAnnouncer wires the two broadcast sinks into a best-effort-both announcer.
func NewInlineAnnouncer(topic ports.Topic, bus ports.EventBus) *InlineAnnouncer {
	return &InlineAnnouncer{topic: topic, bus: bus}
}

// AnnounceCreated publishes the payload to the topic and emits the structured
// creation event to the bus.
func (a *InlineAnnouncer) AnnounceCreated(ctx context.Context, payload string) error {
	if a == nil || a.topic == nil || a.bus == nil {
		return errors.New("inline announcer not configured")
	}
	var joined error
	if err := a.topic.Publish(ctx, payload); err != nil {
		joined = errors.Join(joined, fmt.Errorf("topic publish: %w", err))
	}
	if err := a.bus.PutEvent(ctx, ports.Event{
		Source:     EventSource,
		DetailType: EventDetailTypeCreated,
		Detail:     payload,
	}); err != nil {
		joined = errors.Join(joined, fmt.Errorf("event bus put: %w", err))
	}
	return joined
}
