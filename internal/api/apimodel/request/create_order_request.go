package request

import "nexgen/riskops/internal/risk"

// CreateOrderRequest 创建订单请求
// 线路/车辆/客户为外键引用，参考数据由外部聚合任务维护
type CreateOrderRequest struct {
	ExternalOrderNo string   `json:"external_order_no" binding:"required" example:"ORD-20260101-001"`
	CustomerID      string   `json:"customer_id" binding:"required" example:"CUS-1001"`
	RouteID         string   `json:"route_id" binding:"required" example:"RT-042"`
	VehicleID       string   `json:"vehicle_id" binding:"required" example:"VH-017"`
	Origin          string   `json:"origin" binding:"required" example:"Mumbai"`
	Destination     string   `json:"destination" binding:"required" example:"Delhi"`
	DistanceKM      float64  `json:"distance_km" binding:"min=0" example:"500"`
	PromisedDays    int      `json:"promised_days" binding:"required,min=1" example:"3"`
	Priority        string   `json:"priority" binding:"omitempty,oneof=low medium high critical" example:"high"`
	ProductCategory string   `json:"product_category" example:"Electronics"`
	ValueINR        float64  `json:"value_inr" binding:"min=0" example:"12999.5"`
	RequirementTags []string `json:"requirement_tags" example:"refrigerated"`
}

// ToOrderPayload 转换为核心订单行（ID 由服务端生成后回填）
func (r *CreateOrderRequest) ToOrderPayload() *risk.Order {
	priority := r.Priority
	if priority == "" {
		priority = risk.PriorityMedium
	}
	return &risk.Order{
		CustomerID:      r.CustomerID,
		RouteID:         r.RouteID,
		VehicleID:       r.VehicleID,
		Origin:          r.Origin,
		Destination:     r.Destination,
		DistanceKM:      r.DistanceKM,
		PromisedDays:    r.PromisedDays,
		Priority:        priority,
		ProductCategory: r.ProductCategory,
		ValueINR:        r.ValueINR,
		RequirementTags: r.RequirementTags,
		Status:          "CREATED",
	}
}
