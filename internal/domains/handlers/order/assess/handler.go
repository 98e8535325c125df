package assess

import (
	"context"
	"encoding/json"
	"fmt"

	"nexgen/riskops/internal/business"
	"nexgen/riskops/internal/domains/common"
	"nexgen/riskops/internal/domains/common/job"
	"nexgen/riskops/internal/domains/common/response"
	"nexgen/riskops/internal/model"
)

// AssessHandler 订单评估 Handler
type AssessHandler struct {
	ctx     context.Context
	meta    *job.Meta
	bizData *model.OrderAssessBusinessData
}

// NewAssessHandler 创建评估 Handler
// 解析标准化 Job 消息并校验必填字段
func NewAssessHandler(ctx context.Context, meta *job.Meta, payload interface{}) (common.HandlerServ, error) {
	// 解析 payload（业务数据）
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload failed: %w", err)
	}

	var bizData model.OrderAssessBusinessData
	if err := json.Unmarshal(payloadBytes, &bizData); err != nil {
		return nil, fmt.Errorf("unmarshal business data failed: %w", err)
	}

	// 校验必填字段
	if bizData.OrderID == "" {
		return nil, fmt.Errorf("order_id is required")
	}
	if bizData.Order.ID == "" {
		return nil, fmt.Errorf("order payload is required")
	}
	if bizData.Order.ID != bizData.OrderID {
		return nil, fmt.Errorf("order payload id %s does not match order_id %s", bizData.Order.ID, bizData.OrderID)
	}

	return &AssessHandler{
		ctx:     ctx,
		meta:    meta,
		bizData: &bizData,
	}, nil
}

// GetProcess 处理评估请求
func (h *AssessHandler) GetProcess() *response.Response {
	result := response.NewAssessResult()

	err := h.process()

	resp := &response.Response{}
	resp.WrapResponse(result, h.meta, err)

	return resp
}

// process 业务处理逻辑
func (h *AssessHandler) process() error {
	// 从 Context 获取 AssessmentService
	assessmentService, ok := h.ctx.Value("assessment_service").(*business.AssessmentService)
	if !ok || assessmentService == nil {
		return fmt.Errorf("AssessmentService not found in context")
	}

	input := &business.AssessInput{
		RequestID: h.meta.RequestID,
		OrderID:   h.bizData.OrderID,
		Order:     &h.bizData.Order,
	}

	// 执行评估并发送回调
	return assessmentService.ExecuteAssessment(h.ctx, input)
}
