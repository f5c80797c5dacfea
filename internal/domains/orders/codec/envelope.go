// Package codec translates between domain orders and the notification wire
// formats: the flat order payload published to the broadcast channels, and
// the notification envelope the pub/sub relay wraps around it before queue
// delivery.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Apurer/go-order-service/internal/domains/orders/domain"
)

// ErrDecode marks any failure to unwrap or parse a notification message.
// Callers skip the offending message and leave it undeleted for redelivery.
var ErrDecode = errors.New("decode order notification")

// payload is the canonical wire shape of an order.
type payload struct {
	Amount    int64 `json:"amount"`
	Quantity  int64 `json:"quantity"`
	Total     int64 `json:"total"`
	Processed bool  `json:"processed"`
}

// incomingPayload uses pointers for the required fields so absence can be
// told apart from a legitimate zero.
type incomingPayload struct {
	Amount    *int64 `json:"amount"`
	Quantity  *int64 `json:"quantity"`
	Total     int64  `json:"total"`
	Processed bool   `json:"processed"`
}

// envelope is the outer delivery wrapper; Message carries the order payload
// as a JSON-encoded string.
type envelope struct {
	Message *string `json:"Message"`
}

// EncodePayload serializes an order to the canonical wire payload.
func EncodePayload(order *domain.Order) (string, error) {
	if order == nil {
		return "", errors.New("order is nil")
	}
	raw, err := json.Marshal(payload{
		Amount:    order.Amount,
		Quantity:  order.Quantity,
		Total:     order.Total,
		Processed: order.Processed,
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// EncodeEnvelope wraps a serialized payload the way the pub/sub relay does
// before handing it to the queue.
func EncodeEnvelope(payload string) (string, error) {
	raw, err := json.Marshal(envelope{Message: &payload})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeEnvelope unwraps one envelope level and parses the inner payload into
// an order. All failure modes wrap ErrDecode.
func DecodeEnvelope(body []byte) (*domain.Order, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed envelope: %w", ErrDecode, err)
	}
	if env.Message == nil {
		return nil, fmt.Errorf("%w: envelope has no Message field", ErrDecode)
	}
	return DecodePayload([]byte(*env.Message))
}

// DecodePayload parses the flat order payload, requiring amount and quantity.
func DecodePayload(raw []byte) (*domain.Order, error) {
	var in incomingPayload
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %w", ErrDecode, err)
	}
	if in.Amount == nil {
		return nil, fmt.Errorf("%w: payload is missing amount", ErrDecode)
	}
	if in.Quantity == nil {
		return nil, fmt.Errorf("%w: payload is missing quantity", ErrDecode)
	}
	return &domain.Order{
		Amount:    *in.Amount,
		Quantity:  *in.Quantity,
		Total:     in.Total,
		Processed: in.Processed,
	}, nil
}
