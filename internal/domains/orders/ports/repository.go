package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-order-service/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Save is an upsert keyed by order identity so
// that redelivered notifications converge instead of duplicating rows.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
