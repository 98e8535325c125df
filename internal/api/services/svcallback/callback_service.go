package svcallback

import (
	"context"
	"encoding/json"
	"fmt"

	"nexgen/riskops/internal/api/repo/rporder"
	"nexgen/riskops/internal/entity"
	"nexgen/riskops/internal/model"
	"nexgen/riskops/pkg/infra/redis"
	"nexgen/riskops/pkg/logger"
)

// CallbackService 回调处理服务
// 职责：
// 1. 处理 worker 发送的评估回调
// 2. 更新 DB 订单状态与评估结果
// 3. 发送 Redis PubSub 通知（Smart Wait）
type CallbackService struct {
	orderRepo   rporder.OrderRepository
	redisClient *redis.PubSubClient
	logger      logger.Logger
}

// NewCallbackService 创建回调服务实例
func NewCallbackService(
	orderRepo rporder.OrderRepository,
	redisClient *redis.PubSubClient,
	log logger.Logger,
) *CallbackService {
	return &CallbackService{
		orderRepo:   orderRepo,
		redisClient: redisClient,
		logger:      log,
	}
}

// HandleCallback 处理评估回调
// 返回 error 表示处理失败（需要重试）
func (s *CallbackService) HandleCallback(ctx context.Context, callback *model.OrderAssessCallback) error {
	s.logger.Infof(ctx, "Processing callback: order_id=%s, status=%s, request_id=%s",
		callback.OrderID, callback.Status, callback.RequestID)

	// 1. 根据回调状态更新 DB
	if err := s.updateOrderStatus(ctx, callback); err != nil {
		s.logger.Errorf(ctx, "Failed to update order status: order_id=%s, error=%v", callback.OrderID, err)
		return fmt.Errorf("update order status failed: %w", err)
	}

	// 2. 发送 Redis PubSub 通知（用于 Smart Wait）
	// 通知失败不影响整体流程（DB 已更新成功），只记录日志
	if err := s.publishNotification(ctx, callback); err != nil {
		s.logger.Warnf(ctx, "Failed to publish Redis notification: order_id=%s, error=%v", callback.OrderID, err)
	}

	s.logger.Infof(ctx, "Callback processed successfully: order_id=%s", callback.OrderID)

	return nil
}

// updateOrderStatus 根据回调状态更新订单
func (s *CallbackService) updateOrderStatus(ctx context.Context, callback *model.OrderAssessCallback) error {
	if callback.Status == model.CallbackStatusSuccess {
		// 评估成功：更新状态为 ASSESSED，保存评估结果
		return s.orderRepo.UpdateAssessResult(
			ctx,
			callback.OrderID,
			callback.Result,
			entity.OrderStatusAssessed,
			"",
		)
	}

	// 评估失败：更新状态为 FAILED，保存错误类别与信息
	errMsg := callback.Error
	if callback.ErrorKind != "" {
		errMsg = fmt.Sprintf("%s: %s", callback.ErrorKind, callback.Error)
	}
	return s.orderRepo.UpdateAssessResult(
		ctx,
		callback.OrderID,
		nil,
		entity.OrderStatusFailed,
		errMsg,
	)
}

// publishNotification 发送 Redis PubSub 通知（使用订单独立频道）
func (s *CallbackService) publishNotification(ctx context.Context, callback *model.OrderAssessCallback) error {
	channel := redis.NotifyChannel(callback.OrderID)

	// 成功发送完整评估结果，失败发送状态与错误信息
	var notificationData interface{}
	if callback.Status == model.CallbackStatusSuccess && callback.Result != nil {
		notificationData = callback.Result
	} else {
		notificationData = map[string]interface{}{
			"status":     callback.Status,
			"error_kind": callback.ErrorKind,
			"error":      callback.Error,
		}
	}

	payload, err := json.Marshal(notificationData)
	if err != nil {
		return fmt.Errorf("marshal notification failed: %w", err)
	}

	if err := s.redisClient.Publish(ctx, channel, string(payload)); err != nil {
		return fmt.Errorf("publish to redis failed: %w", err)
	}

	s.logger.Infof(ctx, "Redis notification sent: order_id=%s, channel=%s", callback.OrderID, channel)

	return nil
}
