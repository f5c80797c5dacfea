package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersapp "github.com/Apurer/go-order-service/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

const (
	// PublishOrderCreatedActivityName publishes the payload to the broadcast topic.
	PublishOrderCreatedActivityName = "orders.activities.PublishOrderCreated"
	// EmitOrderCreatedActivityName submits the structured creation event to the bus.
	EmitOrderCreatedActivityName = "orders.activities.EmitOrderCreated"
)

// Activities groups the broadcast-sink activities of the announce workflow.
type Activities struct {
	topic ordersports.Topic
	bus   ordersports.EventBus
}

// NewActivities wires the broadcast sinks into the Temporal activities bundle.
func NewActivities(topic ordersports.Topic, bus ordersports.EventBus) *Activities {
	return &Activities{topic: topic, bus: bus}
}

// PublishOrderCreated sends the serialized payload to the topic channel.
func (a *Activities) PublishOrderCreated(ctx context.Context, payload string) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.topic == nil {
		logger.Error("topic publish activity not initialized")
		return errors.New("topic publish activity not initialized")
	}
	if err := a.topic.Publish(ctx, payload); err != nil {
		logger.Error("PublishOrderCreated activity failed", "error", err)
		return err
	}
	logger.Info("PublishOrderCreated activity completed")
	return nil
}

// EmitOrderCreated submits the structured creation event to the bus channel.
func (a *Activities) EmitOrderCreated(ctx context.Context, payload string) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.bus == nil {
		logger.Error("event emit activity not initialized")
		return errors.New("event emit activity not initialized")
	}
	event := ordersports.Event{
		Source:     ordersapp.EventSource,
		DetailType: ordersapp.EventDetailTypeCreated,
		Detail:     payload,
	}
	if err := a.bus.PutEvent(ctx, event); err != nil {
		logger.Error("EmitOrderCreated activity failed", "error", err)
		return err
	}
	logger.Info("EmitOrderCreated activity completed")
	return nil
}
