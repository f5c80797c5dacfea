package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Apurer/go-order-service/internal/domains/orders/codec"
	"github.com/Apurer/go-order-service/internal/domains/orders/domain"
	"github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

// Queue long-poll defaults mirror the upstream subscription configuration.
const (
	DefaultMaxMessages = 10
	DefaultPollWait    = 20 * time.Second
)

// Service orchestrates the order pipeline use cases: announcing created
// orders and draining the notification queue.
type Service struct {
	repo        ports.Repository
	queue       ports.Queue
	announcer   ports.Announcer
	logger      *slog.Logger
	maxMessages int32
	pollWait    time.Duration
}

type Option func(*Service)

// WithLogger attaches a structured logger for per-message skip diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPolling overrides the receive batch bound and long-poll wait.
func WithPolling(maxMessages int32, wait time.Duration) Option {
	return func(s *Service) {
		if maxMessages > 0 {
			s.maxMessages = maxMessages
		}
		if wait > 0 {
			s.pollWait = wait
		}
	}
}

// NewService wires the pipeline collaborators. All client handles arrive by
// injection; the service holds no process-wide state.
func NewService(repo ports.Repository, queue ports.Queue, announcer ports.Announcer, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		queue:       queue,
		announcer:   announcer,
		logger:      slog.Default(),
		maxMessages: DefaultMaxMessages,
		pollWait:    DefaultPollWait,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder serializes the order and announces it on both broadcast
// channels. The order is not persisted here; persistence happens when the
// notification comes back through the queue.
func (s *Service) CreateOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", ErrSerialization)
	}
	payload, err := codec.EncodePayload(order)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	if err := s.announcer.AnnounceCreated(ctx, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	return nil
}

// PollOrders runs one consumer cycle: a blocking long-poll receive followed by
// sequential per-message decode, process, and delete. Messages are independent;
// a failure skips only its own message and leaves it on the queue for
// redelivery after the visibility timeout.
func (s *Service) PollOrders(ctx context.Context) (ports.PollResult, error) {
	messages, err := s.queue.Receive(ctx, s.maxMessages, s.pollWait)
	if err != nil {
		return ports.PollResult{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	result := ports.PollResult{Received: len(messages)}
	for _, message := range messages {
		order, err := codec.DecodeEnvelope([]byte(message.Body))
		if err != nil {
			s.logger.Warn("skipping undecodable message", slog.String("error", err.Error()))
			continue
		}
		if err := s.processOrder(ctx, order); err != nil {
			s.logger.Error("order processing failed, leaving message for redelivery",
				slog.String("error", err.Error()))
			continue
		}
		result.Processed++
		if err := s.queue.Delete(ctx, message.ReceiptHandle); err != nil {
			// The order is already persisted; redelivery reprocesses it to
			// the same state, so this stays a warning.
			s.logger.Warn("failed to delete processed message",
				slog.String("error", err.Error()))
		}
	}
	return result, nil
}

// ListOrders returns the persisted orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// processOrder applies the derived-field computation and persists the result.
func (s *Service) processOrder(ctx context.Context, order *domain.Order) error {
	order.Process()
	if _, err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
