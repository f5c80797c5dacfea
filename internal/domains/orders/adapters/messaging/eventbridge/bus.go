// Package eventbridge adapts Amazon EventBridge to the pipeline's event-bus port.
package eventbridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"

	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

var _ ports.EventBus = (*Bus)(nil)

// Bus submits structured events to one EventBridge event bus.
type Bus struct {
	client  *awseventbridge.Client
	busName string
}

// NewBus wires an EventBridge client to an event bus name. Caller owns the client lifecycle.
func NewBus(client *awseventbridge.Client, busName string) *Bus {
	return &Bus{client: client, busName: busName}
}

// PutEvent submits one event entry. A per-entry failure reported inside an
// otherwise successful PutEvents call still counts as an error here.
func (b *Bus) PutEvent(ctx context.Context, event ports.Event) error {
	if b == nil || b.client == nil {
		return errors.New("eventbridge bus adapter not configured")
	}
	out, err := b.client.PutEvents(ctx, &awseventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{{
			EventBusName: aws.String(b.busName),
			Source:       aws.String(event.Source),
			DetailType:   aws.String(event.DetailType),
			Detail:       aws.String(event.Detail),
		}},
	})
	if err != nil {
		return err
	}
	if out.FailedEntryCount > 0 {
		for _, entry := range out.Entries {
			if entry.ErrorCode != nil {
				return fmt.Errorf("event entry rejected: %s: %s",
					aws.ToString(entry.ErrorCode), aws.ToString(entry.ErrorMessage))
			}
		}
		return errors.New("event entry rejected")
	}
	return nil
}
