package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Apurer/go-order-service/internal/domains/orders/codec"
	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

var (
	_ ports.Queue    = (*Broker)(nil)
	_ ports.Topic    = (*Broker)(nil)
	_ ports.EventBus = (*Broker)(nil)
)

// DefaultVisibilityTimeout hides a delivered-but-undeleted message from
// subsequent receives before it becomes redeliverable.
const DefaultVisibilityTimeout = 30 * time.Second

const receivePollInterval = 25 * time.Millisecond

// Broker is an in-memory stand-in for the messaging backend used when no
// queue/topic/bus configuration is present. A topic publish wraps the payload
// in the notification envelope and enqueues it, mirroring the topic-to-queue
// subscription, so the full create-to-consume loop works in one process.
// Events put on the bus are retained for inspection.
type Broker struct {
	mu         sync.Mutex
	messages   []*queuedMessage
	events     []ports.Event
	handleSeq  int64
	visibility time.Duration
}

type queuedMessage struct {
	body          string
	receiptHandle string
	invisibleTo   time.Time
}

func NewBroker() *Broker {
	return &Broker{visibility: DefaultVisibilityTimeout}
}

// WithVisibilityTimeout overrides the redelivery delay, mainly for tests.
func (b *Broker) WithVisibilityTimeout(d time.Duration) *Broker {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d > 0 {
		b.visibility = d
	}
	return b
}

// Publish wraps the payload in the delivery envelope and enqueues it.
func (b *Broker) Publish(_ context.Context, payload string) error {
	body, err := codec.EncodeEnvelope(payload)
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, &queuedMessage{body: body})
	return nil
}

// PutEvent records a structured event.
func (b *Broker) PutEvent(_ context.Context, event ports.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

// Events returns a copy of every event put on the bus so far.
func (b *Broker) Events() []ports.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ports.Event, len(b.events))
	copy(out, b.events)
	return out
}

// Receive returns up to maxMessages visible messages, blocking up to wait for
// at least one to appear. Each returned message gets a fresh receipt handle
// and is hidden until the visibility timeout elapses or it is deleted.
func (b *Broker) Receive(ctx context.Context, maxMessages int32, wait time.Duration) ([]ports.Message, error) {
	if maxMessages <= 0 {
		maxMessages = 1
	}
	deadline := time.Now().Add(wait)
	for {
		batch := b.lease(int(maxMessages))
		if len(batch) > 0 || wait <= 0 || time.Now().After(deadline) {
			return batch, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(receivePollInterval):
		}
	}
}

func (b *Broker) lease(limit int) []ports.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	var batch []ports.Message
	for _, msg := range b.messages {
		if len(batch) == limit {
			break
		}
		if msg.invisibleTo.After(now) {
			continue
		}
		b.handleSeq++
		msg.receiptHandle = fmt.Sprintf("rh-%d", b.handleSeq)
		msg.invisibleTo = now.Add(b.visibility)
		batch = append(batch, ports.Message{Body: msg.body, ReceiptHandle: msg.receiptHandle})
	}
	return batch
}

// Delete acknowledges one delivery. The handle only works while its delivery
// attempt is in flight; a stale or unknown handle is rejected.
func (b *Broker) Delete(_ context.Context, receiptHandle string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	for i, msg := range b.messages {
		if msg.receiptHandle == receiptHandle && msg.invisibleTo.After(now) {
			b.messages = append(b.messages[:i], b.messages[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("receipt handle %q is stale or unknown", receiptHandle)
}
