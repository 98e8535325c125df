package domains

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bitleak/lmstfy/client"
	"github.com/stretchr/testify/require"

	"nexgen/riskops/internal/domains/common/response"
	"nexgen/riskops/internal/model"
	"nexgen/riskops/pkg/errorutil"
	"nexgen/riskops/pkg/lmstfyx"
)

type nopLogger struct{}

func (nopLogger) Debugf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Infof(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Sync() error                                                    { return nil }

func assessJobData(t *testing.T, requestID string) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"payload": map[string]interface{}{
			"data": map[string]interface{}{
				"request_id":  requestID,
				"org_id":      "0",
				"action_type": model.ActionTypeOrderAssess,
				"id":          "ORD-1",
				"data": map[string]interface{}{
					"order_id": "ORD-1",
					"order":    map[string]interface{}{"id": "ORD-1", "customer_id": "CUS-1", "route_id": "RT-1", "vehicle_id": "VH-1"},
				},
			},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

func TestParseJob(t *testing.T) {
	lmstfyJob := &client.Job{Data: assessJobData(t, "req-1")}

	standardJob, meta, bizPayload, err := parseJob(context.Background(), lmstfyJob, nopLogger{})
	require.NoError(t, err)
	require.NotNil(t, standardJob)
	require.Equal(t, "req-1", meta.RequestID)
	require.Equal(t, model.ActionTypeOrderAssess, meta.ActionType)
	require.Equal(t, "ORD-1", meta.ID)
	require.NotNil(t, bizPayload)
}

func TestParseJobGeneratesRequestID(t *testing.T) {
	lmstfyJob := &client.Job{Data: assessJobData(t, "")}

	_, meta, _, err := parseJob(context.Background(), lmstfyJob, nopLogger{})
	require.NoError(t, err)
	require.NotEmpty(t, meta.RequestID)
}

func TestParseJobInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("{broken")},
		{"nil payload", []byte(`{}`)},
		{"nil payload data", []byte(`{"payload":{}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := parseJob(context.Background(), &client.Job{Data: tt.data}, nopLogger{})
			require.Error(t, err)
		})
	}
}

func TestGetProcessBuriesUnknownActionType(t *testing.T) {
	data, err := json.Marshal(map[string]interface{}{
		"payload": map[string]interface{}{
			"data": map[string]interface{}{
				"request_id":  "req-1",
				"action_type": "order_teleport",
				"id":          "ORD-1",
			},
		},
	})
	require.NoError(t, err)

	proc := GetProcess(nopLogger{}, nil)
	resp := proc(context.Background(), &client.Job{Data: data})
	require.Equal(t, lmstfyx.JobRespStatusBury, resp.Action)
}

func TestGetProcessBuriesUnparsableJob(t *testing.T) {
	proc := GetProcess(nopLogger{}, nil)
	resp := proc(context.Background(), &client.Job{Data: []byte("not json")})
	require.Equal(t, lmstfyx.JobRespStatusBury, resp.Action)
}

func TestDoJobReport(t *testing.T) {
	tests := []struct {
		name       string
		resp       *response.Response
		wantAction lmstfyx.JobRespStatus
	}{
		{"success ack", &response.Response{}, lmstfyx.JobRespStatusSuccess},
		{"retryable error released", &response.Response{Error: errorutil.Retriable("queue down")}, lmstfyx.JobRespStatusRelease},
		{"non-retryable error buried", &response.Response{Error: errorutil.NonRetriable("bad payload")}, lmstfyx.JobRespStatusBury},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJobReport(context.Background(), tt.resp, nopLogger{})
			require.Equal(t, tt.wantAction, resp.Action)
		})
	}
}
