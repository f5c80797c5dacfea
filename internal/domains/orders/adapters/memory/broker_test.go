package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-order-service/internal/domains/orders/codec"
	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

func TestBroker_PublishDeliversEnvelopedMessage(t *testing.T) {
	broker := NewBroker()
	ctx := context.Background()

	require.NoError(t, broker.Publish(ctx, `{"amount":5,"quantity":3,"total":0,"processed":false}`))

	batch, err := broker.Receive(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, batch, 1)

	order, err := codec.DecodeEnvelope([]byte(batch[0].Body))
	require.NoError(t, err)
	require.Equal(t, int64(5), order.Amount)
	require.Equal(t, int64(3), order.Quantity)
}

func TestBroker_DeleteAcknowledgesDelivery(t *testing.T) {
	broker := NewBroker()
	ctx := context.Background()
	require.NoError(t, broker.Publish(ctx, "{}"))

	batch, err := broker.Receive(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	require.NoError(t, broker.Delete(ctx, batch[0].ReceiptHandle))

	// Deleted messages never come back; the used handle is spent.
	batch, err = broker.Receive(ctx, 10, 0)
	require.NoError(t, err)
	require.Empty(t, batch)
	require.Error(t, broker.Delete(ctx, "rh-1"))
}

func TestBroker_UnknownHandleRejected(t *testing.T) {
	broker := NewBroker()
	require.Error(t, broker.Delete(context.Background(), "rh-never-issued"))
}

func TestBroker_UndeletedMessageRedelivered(t *testing.T) {
	broker := NewBroker().WithVisibilityTimeout(20 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, broker.Publish(ctx, "{}"))

	first, err := broker.Receive(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Hidden while in flight.
	hidden, err := broker.Receive(ctx, 10, 0)
	require.NoError(t, err)
	require.Empty(t, hidden)

	time.Sleep(30 * time.Millisecond)
	second, err := broker.Receive(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// Redelivery invalidates the previous handle.
	require.NotEqual(t, first[0].ReceiptHandle, second[0].ReceiptHandle)
	require.Error(t, broker.Delete(ctx, first[0].ReceiptHandle))
	require.NoError(t, broker.Delete(ctx, second[0].ReceiptHandle))
}

func TestBroker_RecordsBusEvents(t *testing.T) {
	broker := NewBroker()
	event := ports.Event{Source: "order.service", DetailType: "OrderCreated", Detail: "{}"}
	require.NoError(t, broker.PutEvent(context.Background(), event))
	require.Equal(t, []ports.Event{event}, broker.Events())
}
