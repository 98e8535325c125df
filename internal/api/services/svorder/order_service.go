package svorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nexgen/riskops/internal/api/entity/etorder"
	"nexgen/riskops/internal/api/modules/mdassess"
	"nexgen/riskops/internal/api/repo/rporder"
	"nexgen/riskops/internal/risk"
	"nexgen/riskops/pkg/logger"
)

// OrderService 订单服务，负责订单业务编排
type OrderService struct {
	orderRepo    rporder.OrderRepository
	assessModule *mdassess.AssessModule
	logger       logger.Logger
}

// NewOrderService 创建订单服务实例
func NewOrderService(orderRepo rporder.OrderRepository, assessModule *mdassess.AssessModule, log logger.Logger) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		assessModule: assessModule,
		logger:       log,
	}
}

// CreateOrder 创建订单（完整业务流程）
// 1. 检查订单重复
// 2. 创建订单并落库
// 3. 发布到评估队列
// 4. Smart Wait（等待评估结果）
func (s *OrderService) CreateOrder(ctx context.Context, externalOrderNo string, payload *risk.Order, waitSeconds int) (*etorder.Order, error) {
	existing, err := s.orderRepo.GetByCustomerAndExternalNo(ctx, payload.CustomerID, externalOrderNo)
	if err != nil {
		return nil, fmt.Errorf("check order duplicate failed: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("order already exists: external_order_no=%s", externalOrderNo)
	}

	// 订单 ID 由服务端生成，payload 快照与订单行保持同一 ID
	payload.ID = uuid.New().String()
	order, err := etorder.NewOrder(payload.ID, payload.CustomerID, externalOrderNo, payload)
	if err != nil {
		return nil, fmt.Errorf("create order entity failed: %w", err)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save order failed: %w", err)
	}

	// 发布到评估队列；发布失败只记录日志，不影响订单创建成功
	if err := s.assessModule.PublishAssessJob(ctx, order); err != nil {
		s.logger.Warnf(ctx, "publish assess job failed: order_id=%s, error=%v", order.ID, err)
	}

	// Smart Wait（等待评估结果）
	if waitSeconds > 0 {
		timeout := time.Duration(waitSeconds) * time.Second
		result, err := s.assessModule.WaitForAssessResult(ctx, order.ID, timeout)
		if err != nil {
			// 超时或订阅失败，只记录日志；订单状态仍为 ASSESSING，由调用方轮询
			s.logger.Warnf(ctx, "wait for assess result failed: order_id=%s, error=%v", order.ID, err)
			return order, nil
		}

		if result != nil {
			// 更新内存中的 Order 实体；DB 已由 callback consumer 落库
			if err := order.UpdateAssessResult(result); err != nil {
				return nil, fmt.Errorf("update order entity failed: %w", err)
			}
		}
	}

	return order, nil
}

// GetOrder 查询订单
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

// ListOrders 查询订单列表
func (s *OrderService) ListOrders(ctx context.Context, customerID string, page, limit int) ([]*etorder.Order, int64, error) {
	return s.orderRepo.List(ctx, customerID, page, limit)
}
