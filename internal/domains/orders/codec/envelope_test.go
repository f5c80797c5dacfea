package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-order-service/internal/domains/orders/domain"
)

func TestEncodePayload_CanonicalShape(t *testing.T) {
	payload, err := EncodePayload(domain.NewOrder(7, 4))
	require.NoError(t, err)
	require.JSONEq(t, `{"amount":7,"quantity":4,"total":0,"processed":false}`, payload)
}

func TestPayloadRoundTrip(t *testing.T) {
	original := domain.NewOrder(10, 2)
	original.Process()

	payload, err := EncodePayload(original)
	require.NoError(t, err)

	decoded, err := DecodePayload([]byte(payload))
	require.NoError(t, err)
	require.Equal(t, original.Amount, decoded.Amount)
	require.Equal(t, original.Quantity, decoded.Quantity)
	require.Equal(t, original.Total, decoded.Total)
	require.Equal(t, original.Processed, decoded.Processed)
}

func TestDecodeEnvelope(t *testing.T) {
	order, err := DecodeEnvelope([]byte(`{"Message": "{\"amount\":5,\"quantity\":3}"}`))
	require.NoError(t, err)
	require.Equal(t, int64(5), order.Amount)
	require.Equal(t, int64(3), order.Quantity)
	require.False(t, order.Processed)
}

func TestDecodeEnvelope_Failures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed outer document", `not json`},
		{"missing Message field", `{"Type":"Notification"}`},
		{"malformed inner payload", `{"Message":"not json"}`},
		{"missing amount", `{"Message":"{\"quantity\":3}"}`},
		{"missing quantity", `{"Message":"{\"amount\":5}"}`},
		{"mis-typed amount", `{"Message":"{\"amount\":\"five\",\"quantity\":3}"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(tc.body))
			require.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestEncodeEnvelope_RoundTrip(t *testing.T) {
	payload, err := EncodePayload(domain.NewOrder(5, 3))
	require.NoError(t, err)

	wrapped, err := EncodeEnvelope(payload)
	require.NoError(t, err)

	order, err := DecodeEnvelope([]byte(wrapped))
	require.NoError(t, err)
	require.Equal(t, int64(5), order.Amount)
	require.Equal(t, int64(3), order.Quantity)
}
