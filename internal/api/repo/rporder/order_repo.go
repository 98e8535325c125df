package rporder

import (
	"context"

	"nexgen/riskops/internal/api/entity/etorder"
	"nexgen/riskops/internal/model"
)

// OrderRepository 订单仓储接口（只定义，不实现）
// 实现在 MySQL 持久化层
type OrderRepository interface {
	// Create 创建订单
	Create(ctx context.Context, order *etorder.Order) error

	// GetByID 根据ID查询订单
	GetByID(ctx context.Context, orderID string) (*etorder.Order, error)

	// GetByCustomerAndExternalNo 根据客户ID和外部订单号查询（检查重复）
	GetByCustomerAndExternalNo(ctx context.Context, customerID, externalOrderNo string) (*etorder.Order, error)

	// UpdateAssessResult 更新评估结果
	// result: 评估结果（成功时传入，失败时传 nil）
	// status: 订单状态（ASSESSED 或 FAILED）
	// errorMsg: 错误信息（失败时传入）
	UpdateAssessResult(ctx context.Context, orderID string, result *model.AssessResultData, status string, errorMsg string) error

	// List 分页查询订单列表
	List(ctx context.Context, customerID string, page, limit int) ([]*etorder.Order, int64, error)
}
