package entity

import (
	"time"

	"gorm.io/datatypes"
)

// OrderRecord 订单实体（含评估结果）
type OrderRecord struct {
	// 基础字段
	ID              string `gorm:"column:id;primaryKey;type:varchar(64)"`
	CustomerID      string `gorm:"column:customer_id;type:varchar(64);not null;index:idx_customer_status;uniqueIndex:uk_customer_external"`
	ExternalOrderNo string `gorm:"column:external_order_no;type:varchar(128);not null;uniqueIndex:uk_customer_external"`
	RouteID         string `gorm:"column:route_id;type:varchar(64);not null"`
	VehicleID       string `gorm:"column:vehicle_id;type:varchar(64);not null"`

	// 订单数据（risk.Order 的 JSON 快照）
	RawData datatypes.JSON `gorm:"column:order_data;type:json;not null"`

	// 评估状态与结果
	Status       string         `gorm:"column:status;type:varchar(16);not null;default:'ASSESSING';index:idx_customer_status"`
	AssessResult datatypes.JSON `gorm:"column:assess_result;type:json"`
	ErrorMessage string         `gorm:"column:error_message;type:varchar(512)"`

	// 时间戳
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (OrderRecord) TableName() string {
	return "orders"
}

// 订单评估状态常量
const (
	OrderStatusAssessing = "ASSESSING"
	OrderStatusAssessed  = "ASSESSED"
	OrderStatusFailed    = "FAILED"
)
