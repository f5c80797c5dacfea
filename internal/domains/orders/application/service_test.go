package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-order-service/internal/domains/orders/codec"
	"github.com/Apurer/go-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

type fakeRepo struct {
	saved   []*domain.Order
	saveErr error
}

func (f *fakeRepo) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	clone := *order
	f.saved = append(f.saved, &clone)
	return &clone, nil
}

func (f *fakeRepo) GetByID(context.Context, int64) (*domain.Order, error) {
	return nil, ports.ErrNotFound
}

func (f *fakeRepo) List(context.Context) ([]*domain.Order, error) {
	return f.saved, nil
}

type fakeQueue struct {
	messages   []ports.Message
	receiveErr error
	deleted    []string
	deleteErr  error
}

func (f *fakeQueue) Receive(_ context.Context, _ int32, _ time.Duration) ([]ports.Message, error) {
	if f.receiveErr != nil {
		return nil, f.receiveErr
	}
	return f.messages, nil
}

func (f *fakeQueue) Delete(_ context.Context, handle string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, handle)
	return nil
}

type fakeTopic struct {
	published []string
	err       error
}

func (f *fakeTopic) Publish(_ context.Context, payload string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, payload)
	return nil
}

type fakeBus struct {
	events []ports.Event
	err    error
}

func (f *fakeBus) PutEvent(_ context.Context, event ports.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func envelopeFor(t *testing.T, order *domain.Order) string {
	t.Helper()
	payload, err := codec.EncodePayload(order)
	require.NoError(t, err)
	wrapped, err := codec.EncodeEnvelope(payload)
	require.NoError(t, err)
	return wrapped
}

func TestCreateOrder_AnnouncesToBothSinks(t *testing.T) {
	topic := &fakeTopic{}
	bus := &fakeBus{}
	svc := NewService(&fakeRepo{}, &fakeQueue{}, NewInlineAnnouncer(topic, bus))

	err := svc.CreateOrder(context.Background(), domain.NewOrder(7, 4))
	require.NoError(t, err)

	const want = `{"amount":7,"quantity":4,"total":0,"processed":false}`
	require.Len(t, topic.published, 1)
	require.JSONEq(t, want, topic.published[0])
	require.Len(t, bus.events, 1)
	require.Equal(t, EventSource, bus.events[0].Source)
	require.Equal(t, EventDetailTypeCreated, bus.events[0].DetailType)
	require.JSONEq(t, want, bus.events[0].Detail)
}

func TestCreateOrder_PublishFailure(t *testing.T) {
	topic := &fakeTopic{err: errors.New("topic down")}
	bus := &fakeBus{}
	svc := NewService(&fakeRepo{}, &fakeQueue{}, NewInlineAnnouncer(topic, bus))

	err := svc.CreateOrder(context.Background(), domain.NewOrder(1, 1))
	require.ErrorIs(t, err, ErrPublish)
	// The second sink is still attempted.
	require.Len(t, bus.events, 1)
}

func TestPollOrders_SkipsMalformedAndProcessesValid(t *testing.T) {
	repo := &fakeRepo{}
	queue := &fakeQueue{messages: []ports.Message{
		{Body: envelopeFor(t, domain.NewOrder(10, 2)), ReceiptHandle: "rh-valid"},
		{Body: `{"Type":"Notification"}`, ReceiptHandle: "rh-bad"},
	}}
	svc := NewService(repo, queue, NewInlineAnnouncer(&fakeTopic{}, &fakeBus{}))

	result, err := svc.PollOrders(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.PollResult{Received: 2, Processed: 1}, result)

	require.Len(t, repo.saved, 1)
	require.Equal(t, int64(20), repo.saved[0].Total)
	require.True(t, repo.saved[0].Processed)

	// Only the valid message was acknowledged; the malformed one stays for redelivery.
	require.Equal(t, []string{"rh-valid"}, queue.deleted)
}

func TestPollOrders_PersistenceFailureLeavesMessage(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("store rejected write")}
	queue := &fakeQueue{messages: []ports.Message{
		{Body: envelopeFor(t, domain.NewOrder(3, 3)), ReceiptHandle: "rh-1"},
	}}
	svc := NewService(repo, queue, NewInlineAnnouncer(&fakeTopic{}, &fakeBus{}))

	result, err := svc.PollOrders(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.PollResult{Received: 1, Processed: 0}, result)
	require.Empty(t, queue.deleted)
}

func TestPollOrders_DeleteFailureStillCountsProcessed(t *testing.T) {
	repo := &fakeRepo{}
	queue := &fakeQueue{
		messages:  []ports.Message{{Body: envelopeFor(t, domain.NewOrder(2, 2)), ReceiptHandle: "rh-1"}},
		deleteErr: errors.New("handle went stale"),
	}
	svc := NewService(repo, queue, NewInlineAnnouncer(&fakeTopic{}, &fakeBus{}))

	result, err := svc.PollOrders(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.PollResult{Received: 1, Processed: 1}, result)
	require.Len(t, repo.saved, 1)
}

func TestPollOrders_TransportFailurePropagates(t *testing.T) {
	queue := &fakeQueue{receiveErr: errors.New("connection refused")}
	svc := NewService(&fakeRepo{}, queue, NewInlineAnnouncer(&fakeTopic{}, &fakeBus{}))

	_, err := svc.PollOrders(context.Background())
	require.ErrorIs(t, err, ErrTransport)
}

func TestPollOrders_RedeliveryConverges(t *testing.T) {
	repo := &fakeRepo{}
	body := envelopeFor(t, domain.NewOrder(6, 7))
	queue := &fakeQueue{messages: []ports.Message{
		{Body: body, ReceiptHandle: "rh-first"},
		{Body: body, ReceiptHandle: "rh-second"},
	}}
	svc := NewService(repo, queue, NewInlineAnnouncer(&fakeTopic{}, &fakeBus{}))

	result, err := svc.PollOrders(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, result.Processed)
	require.Equal(t, repo.saved[0].Total, repo.saved[1].Total)
	require.Equal(t, int64(42), repo.saved[0].Total)
}
