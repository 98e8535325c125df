package feature

import (
	"nexgen/riskops/internal/risk"
)

// 线路风险分的组成权重与归一化参数
const (
	trafficWeight      = 0.6
	weatherWeight      = 0.4
	trafficNormMinutes = 120.0 // 拥堵延误按 0-120 分钟归一到 0-1
)

// 车辆适配分的归一化参数
const (
	vehicleAgeNormYears = 15.0 // 车龄超过 15 年按最差处理
	fuelEffNormKMPerL   = 20.0 // 油耗效率归一化上限
	neutralComponent    = 0.5  // 车龄/油耗未知时的中性分量
)

// NeutralRating 客户无任何历史评价时的补齐默认值（评分取值 1-5 的中点）
const NeutralRating = 3.0

// DefaultLookbackWindow 客户历史聚合的默认回看窗口（最近 N 单）
const DefaultLookbackWindow = 10

// 天气影响等级到数值风险的映射，未知天气按 0 处理
var weatherRiskMap = map[string]float64{
	risk.WeatherClear:  0,
	risk.WeatherCloudy: 0.2,
	risk.WeatherRain:   0.5,
	risk.WeatherFog:    0.7,
	risk.WeatherStorm:  1.0,
}

// 订单优先级到数值等级的映射，未知按 medium 处理
var priorityLevelMap = map[string]float64{
	risk.PriorityLow:      0,
	risk.PriorityMedium:   1,
	risk.PriorityHigh:     2,
	risk.PriorityCritical: 3,
}

// Config Builder 配置
// LookbackWindow 限定客户历史聚合的计算范围，避免随历史累积无界增长
type Config struct {
	LookbackWindow int
}

// DefaultConfig 返回文档化默认配置
func DefaultConfig() Config {
	return Config{LookbackWindow: DefaultLookbackWindow}
}

// Builder 特征构建器
// Build 为纯函数：相同输入必得相同向量，无隐藏的时间/随机因素
type Builder struct {
	cfg Config
}

// NewBuilder 创建特征构建器，窗口非法时回落到默认值
func NewBuilder(cfg Config) *Builder {
	if cfg.LookbackWindow <= 0 {
		cfg.LookbackWindow = DefaultLookbackWindow
	}
	return &Builder{cfg: cfg}
}

// Build 将一个订单与其线路/车辆/客户参考数据合并为特征向量
// 任一参考实体缺失或外键不匹配时返回 MissingReferenceError，调用方不得静默补齐实体；
// 实体内部的数值缺失按各特征文档化的默认值补齐，保证批量运行逐单降级而非整体失败
func (b *Builder) Build(order *risk.Order, route *risk.Route, vehicle *risk.Vehicle, customer *risk.Customer) (Vector, error) {
	if order == nil {
		return Vector{}, risk.NewMissingReference("", "order", "")
	}
	if route == nil || (order.RouteID != "" && route.ID != order.RouteID) {
		return Vector{}, risk.NewMissingReference(order.ID, risk.RefKindRoute, order.RouteID)
	}
	if vehicle == nil || (order.VehicleID != "" && vehicle.ID != order.VehicleID) {
		return Vector{}, risk.NewMissingReference(order.ID, risk.RefKindVehicle, order.VehicleID)
	}
	if customer == nil || (order.CustomerID != "" && customer.ID != order.CustomerID) {
		return Vector{}, risk.NewMissingReference(order.ID, risk.RefKindCustomer, order.CustomerID)
	}

	delayCount, avgRating := b.customerAggregates(customer)

	values := map[string]float64{
		FeatDistanceKM:         distanceKM(order, route),
		FeatRouteRisk:          RouteRiskScore(route),
		FeatVehicleSuitability: VehicleSuitabilityScore(vehicle),
		FeatVehicleSuitable:    boolFeature(VehicleSuitable(vehicle, order.RequirementTags)),
		FeatPriorityLevel:      priorityLevel(order.Priority),
		FeatOrderValue:         orderValue(order),
		FeatCustomerPastDelays: delayCount,
		FeatCustomerAvgRating:  avgRating,
	}

	return New(Schema(), values), nil
}

// RouteRiskScore 线路风险综合分（0-100）
// 拥堵与天气风险按固定权重线性组合：(traffic*0.6 + weather*0.4) * 100
func RouteRiskScore(route *risk.Route) float64 {
	trafficScore := clamp01(route.TrafficDelayMinutes / trafficNormMinutes)
	weatherRisk := weatherRiskMap[route.WeatherImpact] // 未知天气 → 0
	return (trafficScore*trafficWeight + weatherRisk*weatherWeight) * 100
}

// VehicleSuitabilityScore 车辆适配综合分（0-100）
// 车龄越小、油耗效率越高得分越高；车龄/油耗未知时取 0.5 中性分量
func VehicleSuitabilityScore(vehicle *risk.Vehicle) float64 {
	ageScore := neutralComponent
	if vehicle.AgeYears >= 0 {
		ageScore = 1 - clamp01(vehicle.AgeYears/vehicleAgeNormYears)
	}

	effScore := neutralComponent
	if vehicle.FuelEfficiencyKMPerL > 0 {
		effScore = clamp01(vehicle.FuelEfficiencyKMPerL / fuelEffNormKMPerL)
	}

	return (ageScore + effScore) / 2 * 100
}

// VehicleSuitable 车辆能力标签是否完全覆盖订单要求标签
func VehicleSuitable(vehicle *risk.Vehicle, requirements []string) bool {
	if len(requirements) == 0 {
		return true
	}
	capabilities := make(map[string]struct{}, len(vehicle.CapabilityTags))
	for _, tag := range vehicle.CapabilityTags {
		capabilities[tag] = struct{}{}
	}
	for _, req := range requirements {
		if _, ok := capabilities[req]; !ok {
			return false
		}
	}
	return true
}

// customerAggregates 回看窗口内的客户历史聚合
// 返回 (窗口内延误单数, 窗口内平均评分)；无有效评分时平均评分取 NeutralRating
func (b *Builder) customerAggregates(customer *risk.Customer) (delayCount, avgRating float64) {
	window := customer.History
	if len(window) > b.cfg.LookbackWindow {
		window = window[:b.cfg.LookbackWindow]
	}

	ratingSum, ratingN := 0.0, 0
	for _, past := range window {
		if past.Delayed {
			delayCount++
		}
		if past.Rating > 0 {
			ratingSum += past.Rating
			ratingN++
		}
	}

	avgRating = NeutralRating
	if ratingN > 0 {
		avgRating = ratingSum / float64(ratingN)
	}
	return delayCount, avgRating
}

// distanceKM 订单距离透传，订单未填时回落到线路距离，仍缺失按 0 补齐
func distanceKM(order *risk.Order, route *risk.Route) float64 {
	if order.DistanceKM > 0 {
		return order.DistanceKM
	}
	if route.DistanceKM > 0 {
		return route.DistanceKM
	}
	return 0
}

// priorityLevel 优先级数值化，未知优先级按 medium=1 补齐
func priorityLevel(priority string) float64 {
	if level, ok := priorityLevelMap[priority]; ok {
		return level
	}
	return priorityLevelMap[risk.PriorityMedium]
}

// orderValue 订单金额透传，负值按 0 补齐
func orderValue(order *risk.Order) float64 {
	if order.ValueINR < 0 {
		return 0
	}
	return order.ValueINR
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
