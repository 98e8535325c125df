package mdassess

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nexgen/riskops/internal/api/entity/etorder"
	"nexgen/riskops/internal/model"
	"nexgen/riskops/pkg/infra/redis"
	"nexgen/riskops/pkg/lmstfy"
)

// AssessModule 评估模块
// 职责：
// 1. 组装 Lmstfy 和 Redis 客户端
// 2. 包含评估相关的业务逻辑（消息格式构造、频道命名规则）
type AssessModule struct {
	lmstfyClient *lmstfy.Client
	redisClient  *redis.PubSubClient
	queueName    string
}

// NewAssessModule 创建评估模块实例
func NewAssessModule(lmstfyClient *lmstfy.Client, redisClient *redis.PubSubClient, queueName string) *AssessModule {
	return &AssessModule{
		lmstfyClient: lmstfyClient,
		redisClient:  redisClient,
		queueName:    queueName,
	}
}

// PublishAssessJob 发布订单评估任务到队列
// 订单行内联在消息里传给 worker，worker 不回查订单表取输入
func (m *AssessModule) PublishAssessJob(ctx context.Context, order *etorder.Order) error {
	message := model.OrderAssessJob{
		Payload: model.OrderAssessPayload{
			Data: model.OrderAssessData{
				RequestID:  uuid.New().String(), // 生成请求 ID 用于全链路追踪
				OrgID:      "0",                 // MVP 固定值
				ActionType: model.ActionTypeOrderAssess,
				ID:         order.ID,
				Data: model.OrderAssessBusinessData{
					OrderID: order.ID,
					Order:   *order.Payload,
				},
			},
		},
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal assess job failed: %w", err)
	}

	// ttl=0 永不过期，delay=0 立即可用
	return m.lmstfyClient.Publish(m.queueName, data, 0, 0)
}

// WaitForAssessResult 等待评估结果（Smart Wait）
// 订阅订单独立频道（业务约定：assessment:result:{orderID}），超时返回 error
func (m *AssessModule) WaitForAssessResult(ctx context.Context, orderID string, timeout time.Duration) (*model.AssessResultData, error) {
	channel := redis.NotifyChannel(orderID)

	payload, err := m.redisClient.Subscribe(ctx, channel, timeout)
	if err != nil {
		return nil, err
	}

	// 失败通知不含 assessment，解析后由调用方按状态处理
	var result model.AssessResultData
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, err
	}
	if result.Assessment.OrderID == "" {
		return nil, fmt.Errorf("assessment failed for order %s", orderID)
	}

	return &result, nil
}
