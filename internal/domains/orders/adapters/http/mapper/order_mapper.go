package mapper

import (
	ordersdomain "github.com/Apurer/go-order-service/internal/domains/orders/domain"
)

// Order represents the transport-layer shape of an order.
type Order struct {
	ID        int64 `json:"id,omitempty"`
	Amount    int64 `json:"amount"`
	Quantity  int64 `json:"quantity"`
	Total     int64 `json:"total"`
	Processed bool  `json:"processed"`
}

// ToDomainOrder converts a transport order into the domain model.
func ToDomainOrder(order Order) *ordersdomain.Order {
	return &ordersdomain.Order{
		ID:        order.ID,
		Amount:    order.Amount,
		Quantity:  order.Quantity,
		Total:     order.Total,
		Processed: order.Processed,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:        order.ID,
		Amount:    order.Amount,
		Quantity:  order.Quantity,
		Total:     order.Total,
		Processed: order.Processed,
	}
}

// FromDomainOrderList maps a list of domain orders.
func FromDomainOrderList(orders []*ordersdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}
