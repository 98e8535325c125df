package rporder

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"nexgen/riskops/internal/api/entity/etorder"
	"nexgen/riskops/internal/entity"
	"nexgen/riskops/internal/model"
	"nexgen/riskops/internal/risk"
)

// OrderRepositoryImpl 订单仓储实现（MySQL）
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create 创建订单，将领域对象转换为 GORM 模型后存储
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *etorder.Order) error {
	po, err := r.toGormModel(order)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetByID 根据ID查询订单，将 GORM 模型转换为领域对象
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	var po entity.OrderRecord
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&po).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainModel(&po)
}

// GetByCustomerAndExternalNo 根据客户ID和外部订单号查询（用于检查重复）
func (r *OrderRepositoryImpl) GetByCustomerAndExternalNo(ctx context.Context, customerID, externalOrderNo string) (*etorder.Order, error) {
	var po entity.OrderRecord
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND external_order_no = ?", customerID, externalOrderNo).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomainModel(&po)
}

// UpdateAssessResult 更新评估结果（支持成功/失败两种情况）
// 旧评估结果被新结果整体覆盖；历史评估留存在回调消息与日志中供审计
func (r *OrderRepositoryImpl) UpdateAssessResult(ctx context.Context, orderID string, result *model.AssessResultData, status string, errorMsg string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}

	// 成功时保存评估结果
	if result != nil {
		resultJSON, err := json.Marshal(result)
		if err != nil {
			return err
		}
		updates["assess_result"] = resultJSON
	}

	// 失败时保存错误信息
	if errorMsg != "" {
		updates["error_message"] = errorMsg
	}

	dbResult := r.db.WithContext(ctx).
		Model(&entity.OrderRecord{}).
		Where("id = ?", orderID).
		Updates(updates)
	if dbResult.Error != nil {
		return dbResult.Error
	}
	if dbResult.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List 分页查询订单列表
func (r *OrderRepositoryImpl) List(ctx context.Context, customerID string, page, limit int) ([]*etorder.Order, int64, error) {
	var total int64
	var pos []entity.OrderRecord

	query := r.db.WithContext(ctx).Model(&entity.OrderRecord{})
	if customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*etorder.Order, 0, len(pos))
	for i := range pos {
		order, err := r.toDomainModel(&pos[i])
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, total, nil
}

// toGormModel 领域对象转换为 GORM 模型
func (r *OrderRepositoryImpl) toGormModel(order *etorder.Order) (*entity.OrderRecord, error) {
	payloadJSON, err := json.Marshal(order.Payload)
	if err != nil {
		return nil, err
	}

	po := &entity.OrderRecord{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		ExternalOrderNo: order.ExternalOrderNo,
		RouteID:         order.Payload.RouteID,
		VehicleID:       order.Payload.VehicleID,
		RawData:         payloadJSON,
		Status:          string(order.Status),
		ErrorMessage:    order.ErrorMessage,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	if order.AssessResult != nil {
		resultJSON, err := json.Marshal(order.AssessResult)
		if err != nil {
			return nil, err
		}
		po.AssessResult = resultJSON
	}

	return po, nil
}

// toDomainModel GORM 模型转换为领域对象
func (r *OrderRepositoryImpl) toDomainModel(po *entity.OrderRecord) (*etorder.Order, error) {
	var payload risk.Order
	if err := json.Unmarshal(po.RawData, &payload); err != nil {
		return nil, err
	}

	order := &etorder.Order{
		ID:              po.ID,
		CustomerID:      po.CustomerID,
		ExternalOrderNo: po.ExternalOrderNo,
		Payload:         &payload,
		Status:          etorder.OrderStatus(po.Status),
		ErrorMessage:    po.ErrorMessage,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}

	if len(po.AssessResult) > 0 {
		var result model.AssessResultData
		if err := json.Unmarshal(po.AssessResult, &result); err != nil {
			return nil, err
		}
		order.AssessResult = &result
	}

	return order, nil
}
