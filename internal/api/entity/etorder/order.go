package etorder

import (
	"errors"
	"time"

	"nexgen/riskops/internal/model"
	"nexgen/riskops/internal/risk"
)

// 错误定义
var (
	ErrInvalidOrderID         = errors.New("order ID cannot be empty")
	ErrInvalidCustomerID      = errors.New("customer ID cannot be empty")
	ErrInvalidExternalOrderNo = errors.New("external order number cannot be empty")
	ErrInvalidPayload         = errors.New("invalid order payload")
	ErrNilAssessResult        = errors.New("assess result cannot be nil")
)

// OrderStatus 订单评估状态
type OrderStatus string

const (
	OrderStatusAssessing OrderStatus = "ASSESSING"
	OrderStatusAssessed  OrderStatus = "ASSESSED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

// Order 订单聚合根（领域对象）
// Payload 为送入评估核心的订单行快照；AssessResult 为最近一次评估产出
type Order struct {
	ID              string                  // 订单ID (UUID)
	CustomerID      string                  // 客户ID
	ExternalOrderNo string                  // 外部订单号
	Payload         *risk.Order             // 订单数据快照
	Status          OrderStatus             // 评估状态
	AssessResult    *model.AssessResultData // 评估结果
	ErrorMessage    string                  // 评估失败原因
	CreatedAt       time.Time               // 创建时间
	UpdatedAt       time.Time               // 更新时间
}

// NewOrder 创建订单（工厂方法）
func NewOrder(id, customerID, externalOrderNo string, payload *risk.Order) (*Order, error) {
	// 业务规则校验
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if externalOrderNo == "" {
		return nil, ErrInvalidExternalOrderNo
	}
	if payload == nil || payload.RouteID == "" || payload.VehicleID == "" {
		return nil, ErrInvalidPayload
	}

	now := time.Now()
	return &Order{
		ID:              id,
		CustomerID:      customerID,
		ExternalOrderNo: externalOrderNo,
		Payload:         payload,
		Status:          OrderStatusAssessing,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// UpdateAssessResult 更新评估结果（领域行为）
func (o *Order) UpdateAssessResult(result *model.AssessResultData) error {
	if result == nil {
		return ErrNilAssessResult
	}
	o.AssessResult = result
	o.Status = OrderStatusAssessed
	o.UpdatedAt = time.Now()
	return nil
}

// MarkAsFailed 标记为评估失败（领域行为）
func (o *Order) MarkAsFailed(reason string) {
	o.Status = OrderStatusFailed
	o.ErrorMessage = reason
	o.UpdatedAt = time.Now()
}
