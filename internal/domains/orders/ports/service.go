package ports

import (
	"context"

	"github.com/Apurer/go-order-service/internal/domains/orders/domain"
)

// PollResult reports one consumer cycle. Received counts every message in the
// fetched batch; Processed counts only the messages that decoded, processed,
// and persisted successfully. The two deliberately diverge when a message is
// skipped for redelivery.
type PollResult struct {
	Received  int
	Processed int
}

// Service exposes the order pipeline use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	PollOrders(ctx context.Context) (PollResult, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}
