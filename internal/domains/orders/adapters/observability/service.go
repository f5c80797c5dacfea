package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/Apurer/go-order-service/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-order-service/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-order-service/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, order *ordersdomain.Order) error {
	attrs := []attribute.KeyValue{}
	if order != nil {
		attrs = append(attrs,
			attribute.Int64("order.amount", order.Amount),
			attribute.Int64("order.quantity", order.Quantity))
	}
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder", trace.WithAttributes(attrs...))
	defer span.End()

	s.logInfo(ctx, "announcing order creation")
	if err := s.inner.CreateOrder(ctx, order); err != nil {
		return s.handleError(ctx, span, err, "failed to announce order creation")
	}
	s.metrics.recordAnnounced(ctx)
	s.logInfo(ctx, "order creation announced")
	return nil
}

func (s *Service) PollOrders(ctx context.Context) (ordersports.PollResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PollOrders")
	defer span.End()

	s.logInfo(ctx, "polling order notifications")
	result, err := s.inner.PollOrders(ctx)
	if err != nil {
		return ordersports.PollResult{}, s.handleError(ctx, span, err, "failed to poll order notifications")
	}
	span.SetAttributes(
		attribute.Int("poll.received", result.Received),
		attribute.Int("poll.processed", result.Processed))
	s.metrics.recordPoll(ctx, result)
	s.logInfo(ctx, "poll cycle complete",
		slog.Int("received", result.Received), slog.Int("processed", result.Processed))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersAnnounced   metric.Int64Counter
	messagesReceived  metric.Int64Counter
	messagesProcessed metric.Int64Counter
	messagesSkipped   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	announced, _ := m.Int64Counter("orders.service.orders_announced",
		metric.WithDescription("Number of order creations announced to the broadcast channels"))
	received, _ := m.Int64Counter("orders.service.messages_received",
		metric.WithDescription("Number of notification messages fetched from the queue"))
	processed, _ := m.Int64Counter("orders.service.messages_processed",
		metric.WithDescription("Number of notification messages processed and acknowledged"))
	skipped, _ := m.Int64Counter("orders.service.messages_skipped",
		metric.WithDescription("Number of notification messages left on the queue for redelivery"))
	return serviceMetrics{
		ordersAnnounced:   announced,
		messagesReceived:  received,
		messagesProcessed: processed,
		messagesSkipped:   skipped,
	}
}

func (m serviceMetrics) recordAnnounced(ctx context.Context) {
	if m.ordersAnnounced != nil {
		m.ordersAnnounced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordPoll(ctx context.Context, result ordersports.PollResult) {
	if m.messagesReceived != nil {
		m.messagesReceived.Add(ctx, int64(result.Received))
	}
	if m.messagesProcessed != nil {
		m.messagesProcessed.Add(ctx, int64(result.Processed))
	}
	if m.messagesSkipped != nil {
		m.messagesSkipped.Add(ctx, int64(result.Received-result.Processed))
	}
}

var _ ordersports.Service = (*Service)(nil)
