package risk

import "time"

// Order 订单（核心输入实体）
// 由外部订单系统接入层加载并校验，核心内部只读
type Order struct {
	ID              string   `json:"id"`
	CustomerID      string   `json:"customer_id"`
	RouteID         string   `json:"route_id"`
	VehicleID       string   `json:"vehicle_id"`
	Origin          string   `json:"origin"`
	Destination     string   `json:"destination"`
	DistanceKM      float64  `json:"distance_km"`
	PromisedDays    int      `json:"promised_days"`     // 承诺送达天数
	Priority        string   `json:"priority"`          // low/medium/high/critical
	ProductCategory string   `json:"product_category"`
	ValueINR        float64  `json:"value_inr"`         // 订单金额
	RequirementTags []string `json:"requirement_tags"`  // 运力要求标签（如 refrigerated）
	Status          string   `json:"status"`            // 外部订单系统维护的当前状态
}

// Route 线路参考数据（只读）
type Route struct {
	ID                  string  `json:"id"`
	TrafficDelayMinutes float64 `json:"traffic_delay_minutes"` // 历史拥堵延误（分钟）
	WeatherImpact       string  `json:"weather_impact"`        // Clear/Cloudy/Rain/Fog/Storm
	DistanceKM          float64 `json:"distance_km"`
}

// Vehicle 车辆参考数据（只读）
type Vehicle struct {
	ID                   string   `json:"id"`
	Type                 string   `json:"type"`
	AgeYears             float64  `json:"age_years"`
	FuelEfficiencyKMPerL float64  `json:"fuel_efficiency_km_per_l"`
	CapabilityTags       []string `json:"capability_tags"` // 能力标签（refrigerated/oversized 等）
}

// PastDelivery 客户单次历史履约记录
// Rating 为 1-5 评分，0 表示无评价
type PastDelivery struct {
	OrderID string  `json:"order_id"`
	Delayed bool    `json:"delayed"`
	Rating  float64 `json:"rating"`
}

// Customer 客户参考数据（只读，由外部聚合任务周期性刷新）
// History 按时间倒序排列（最近一单在前），特征构建时按回看窗口截断
type Customer struct {
	ID      string         `json:"id"`
	Segment string         `json:"segment"` // standard/priority/critical
	History []PastDelivery `json:"history"`
}

// 客户分层常量
const (
	SegmentStandard = "standard"
	SegmentPriority = "priority"
	SegmentCritical = "critical"
)

// 订单优先级常量
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// 天气影响等级常量（与线路历史数据取值一致）
const (
	WeatherClear  = "Clear"
	WeatherCloudy = "Cloudy"
	WeatherRain   = "Rain"
	WeatherFog    = "Fog"
	WeatherStorm  = "Storm"
)

// Assessment 单次推理产出的风险评估结果
// 每个订单每次评估生成一条，生成后不再修改；新评估直接取代旧评估，旧记录保留用于审计
type Assessment struct {
	OrderID                 string    `json:"order_id"`
	DelayProbability        float64   `json:"delay_probability"`         // [0,1]
	CustomerRiskProbability float64   `json:"customer_risk_probability"` // [0,1]
	DelayModelVersion       string    `json:"delay_model_version"`
	CustomerModelVersion    string    `json:"customer_model_version"`
	ComputedAt              time.Time `json:"computed_at"`
}

// Recommendation 规则引擎产出的运营动作建议
// RuleID 标识唯一命中的规则，PriorityRank 越小越紧急
type Recommendation struct {
	OrderID       string `json:"order_id"`
	ActionCode    string `json:"action_code"`
	RuleID        string `json:"rule_id"`
	PriorityRank  int    `json:"priority_rank"`
	Reason        string `json:"reason"`
	CostImpact    string `json:"cost_impact"`
	ServiceImpact string `json:"service_impact"`
}
