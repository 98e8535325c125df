package business

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nexgen/riskops/internal/model"
	"nexgen/riskops/internal/risk"
	"nexgen/riskops/internal/risk/pipeline"
	"nexgen/riskops/pkg/errorutil"
	"nexgen/riskops/pkg/logger"
)

// CallbackPublisher 回调发布接口（lmstfy 客户端实现；测试可注入假实现）
type CallbackPublisher interface {
	Publish(queue string, data []byte, ttl, delay uint32) error
}

// AssessInput 评估输入参数（所有订单数据从 payload 传入，不回查 DB）
type AssessInput struct {
	RequestID string
	OrderID   string
	Order     *risk.Order
}

// AssessmentService 评估服务（仅负责评估逻辑，不涉及订单表操作）
// 职责：执行评估流水线 → 构造回调 → 发送到 callback 队列
// 模型工件与参考数据目录在 worker 启动时装配完成，服务运行期只读
type AssessmentService struct {
	orchestrator  *pipeline.Orchestrator
	catalog       *pipeline.Catalog
	publisher     CallbackPublisher
	callbackQueue string
	logger        logger.Logger
}

// NewAssessmentService 创建评估服务实例
func NewAssessmentService(
	orchestrator *pipeline.Orchestrator,
	catalog *pipeline.Catalog,
	publisher CallbackPublisher,
	callbackQueue string,
	log logger.Logger,
) *AssessmentService {
	return &AssessmentService{
		orchestrator:  orchestrator,
		catalog:       catalog,
		publisher:     publisher,
		callbackQueue: callbackQueue,
		logger:        log,
	}
}

// ExecuteAssessment 执行评估并发送回调
// 评估失败不算流程失败：失败信息进入回调消息，由 consumer 落库为失败标记；
// 返回 error 仅表示回调发送环节失败（需要队列重试）
func (s *AssessmentService) ExecuteAssessment(ctx context.Context, input *AssessInput) error {
	// 1. 执行评估流水线
	result, assessErr := s.orchestrator.AssessOrder(ctx, input.Order, s.catalog)

	// 2. 构造回调消息
	callback := model.OrderAssessCallback{
		RequestID:   input.RequestID,
		OrderID:     input.OrderID,
		ProcessedAt: time.Now().Unix(),
	}

	if assessErr != nil {
		callback.Status = model.CallbackStatusFailed
		callback.ErrorKind = risk.ErrKind(assessErr)
		callback.Error = assessErr.Error()
		s.logger.Warnf(ctx, "[AssessmentService] assessment failed: order_id=%s, kind=%s, err=%v",
			input.OrderID, callback.ErrorKind, assessErr)
	} else {
		callback.Status = model.CallbackStatusSuccess
		callback.Result = &model.AssessResultData{
			Assessment:     result.Assessment,
			Recommendation: result.Recommendation,
		}
		s.logger.Infof(ctx, "[AssessmentService] assessment done: order_id=%s, delay=%.3f, customer=%.3f, action=%s, rule=%s",
			input.OrderID,
			result.Assessment.DelayProbability,
			result.Assessment.CustomerRiskProbability,
			result.Recommendation.ActionCode,
			result.Recommendation.RuleID)
	}

	// 3. 序列化回调消息为 JSON
	callbackJSON, err := json.Marshal(callback)
	if err != nil {
		return errorutil.NonRetriable(fmt.Sprintf("failed to marshal callback: %v", err))
	}

	// 4. 发送回调到 callback 队列
	// ttl=0 表示永不过期, delay=0 表示立即可用；发布失败可重试（网络抖动）
	if err := s.publisher.Publish(s.callbackQueue, callbackJSON, 0, 0); err != nil {
		return errorutil.RetriableWithDetails("failed to publish callback", err.Error())
	}

	return nil
}
