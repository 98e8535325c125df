package assess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"nexgen/riskops/internal/domains/common/job"
)

func testMeta() *job.Meta {
	return &job.Meta{
		RequestID:  "req-1",
		ActionType: "order_assess",
		ID:         "ORD-1",
	}
}

func TestNewAssessHandler(t *testing.T) {
	payload := map[string]interface{}{
		"order_id": "ORD-1",
		"order": map[string]interface{}{
			"id":          "ORD-1",
			"customer_id": "CUS-1",
			"route_id":    "RT-1",
			"vehicle_id":  "VH-1",
		},
	}

	h, err := NewAssessHandler(context.Background(), testMeta(), payload)
	require.NoError(t, err)
	require.NotNil(t, h)
}

func TestNewAssessHandlerValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
	}{
		{"missing order_id", map[string]interface{}{
			"order": map[string]interface{}{"id": "ORD-1"},
		}},
		{"missing order payload", map[string]interface{}{
			"order_id": "ORD-1",
		}},
		{"order id mismatch", map[string]interface{}{
			"order_id": "ORD-1",
			"order":    map[string]interface{}{"id": "ORD-2"},
		}},
		{"payload not an object", "just a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAssessHandler(context.Background(), testMeta(), tt.payload)
			require.Error(t, err)
		})
	}
}

func TestGetProcessWithoutServiceInContext(t *testing.T) {
	payload := map[string]interface{}{
		"order_id": "ORD-1",
		"order":    map[string]interface{}{"id": "ORD-1"},
	}

	h, err := NewAssessHandler(context.Background(), testMeta(), payload)
	require.NoError(t, err)

	resp := h.GetProcess()
	require.NotNil(t, resp.Error)
	require.False(t, resp.Processed)
	require.False(t, resp.Error.Retryable)
}
