package etorder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nexgen/riskops/internal/model"
	"nexgen/riskops/internal/risk"
)

func validPayload() *risk.Order {
	return &risk.Order{
		ID:         "ORD-1",
		CustomerID: "CUS-1",
		RouteID:    "RT-1",
		VehicleID:  "VH-1",
	}
}

func TestNewOrder(t *testing.T) {
	order, err := NewOrder("ORD-1", "CUS-1", "EXT-1", validPayload())
	require.NoError(t, err)
	require.Equal(t, OrderStatusAssessing, order.Status)
	require.False(t, order.CreatedAt.IsZero())
}

func TestNewOrderValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		cusID   string
		extNo   string
		payload *risk.Order
		wantErr error
	}{
		{"empty id", "", "CUS-1", "EXT-1", validPayload(), ErrInvalidOrderID},
		{"empty customer", "ORD-1", "", "EXT-1", validPayload(), ErrInvalidCustomerID},
		{"empty external no", "ORD-1", "CUS-1", "", validPayload(), ErrInvalidExternalOrderNo},
		{"nil payload", "ORD-1", "CUS-1", "EXT-1", nil, ErrInvalidPayload},
		{"payload missing route", "ORD-1", "CUS-1", "EXT-1", &risk.Order{VehicleID: "VH-1"}, ErrInvalidPayload},
		{"payload missing vehicle", "ORD-1", "CUS-1", "EXT-1", &risk.Order{RouteID: "RT-1"}, ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.id, tt.cusID, tt.extNo, tt.payload)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateAssessResult(t *testing.T) {
	order, err := NewOrder("ORD-1", "CUS-1", "EXT-1", validPayload())
	require.NoError(t, err)

	require.ErrorIs(t, order.UpdateAssessResult(nil), ErrNilAssessResult)
	require.Equal(t, OrderStatusAssessing, order.Status)

	result := &model.AssessResultData{
		Assessment: risk.Assessment{OrderID: "ORD-1", DelayProbability: 0.4},
	}
	require.NoError(t, order.UpdateAssessResult(result))
	require.Equal(t, OrderStatusAssessed, order.Status)
	require.Equal(t, result, order.AssessResult)
}

func TestMarkAsFailed(t *testing.T) {
	order, err := NewOrder("ORD-1", "CUS-1", "EXT-1", validPayload())
	require.NoError(t, err)

	order.MarkAsFailed("MISSING_REFERENCE: route not found")
	require.Equal(t, OrderStatusFailed, order.Status)
	require.Equal(t, "MISSING_REFERENCE: route not found", order.ErrorMessage)
}
