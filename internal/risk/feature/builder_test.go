package feature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nexgen/riskops/internal/risk"
)

func testOrder() *risk.Order {
	return &risk.Order{
		ID:              "ORD-1",
		CustomerID:      "CUS-1",
		RouteID:         "RT-1",
		VehicleID:       "VH-1",
		DistanceKM:      500,
		PromisedDays:    3,
		Priority:        risk.PriorityHigh,
		ValueINR:        12000,
		RequirementTags: []string{"refrigerated"},
	}
}

func testRoute() *risk.Route {
	return &risk.Route{
		ID:                  "RT-1",
		TrafficDelayMinutes: 60,
		WeatherImpact:       risk.WeatherRain,
		DistanceKM:          480,
	}
}

func testVehicle() *risk.Vehicle {
	return &risk.Vehicle{
		ID:                   "VH-1",
		AgeYears:             5,
		FuelEfficiencyKMPerL: 10,
		CapabilityTags:       []string{"refrigerated", "oversized"},
	}
}

func testCustomer() *risk.Customer {
	return &risk.Customer{
		ID:      "CUS-1",
		Segment: risk.SegmentPriority,
		History: []risk.PastDelivery{
			{OrderID: "H1", Delayed: true, Rating: 2},
			{OrderID: "H2", Delayed: false, Rating: 4},
			{OrderID: "H3", Delayed: true, Rating: 0},
		},
	}
}

func TestBuildProducesFullSchema(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	vec, err := b.Build(testOrder(), testRoute(), testVehicle(), testCustomer())
	require.NoError(t, err)
	require.Equal(t, Schema(), vec.Names())
	require.Nil(t, vec.Missing(Schema()))
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	v1, err := b.Build(testOrder(), testRoute(), testVehicle(), testCustomer())
	require.NoError(t, err)
	v2, err := b.Build(testOrder(), testRoute(), testVehicle(), testCustomer())
	require.NoError(t, err)

	for _, name := range Schema() {
		a, _ := v1.Get(name)
		c, _ := v2.Get(name)
		require.Equal(t, a, c, "feature %s", name)
	}
}

func TestBuildFeatureValues(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	vec, err := b.Build(testOrder(), testRoute(), testVehicle(), testCustomer())
	require.NoError(t, err)

	// 距离：订单自带优先于线路
	dist, _ := vec.Get(FeatDistanceKM)
	require.Equal(t, 500.0, dist)

	// 线路风险：(60/120*0.6 + 0.5*0.4) * 100 = 50
	routeRisk, _ := vec.Get(FeatRouteRisk)
	require.InDelta(t, 50.0, routeRisk, 1e-9)

	// 车辆适配：((1-5/15) + 10/20) / 2 * 100 = 58.33
	suitability, _ := vec.Get(FeatVehicleSuitability)
	require.InDelta(t, (1-5.0/15+0.5)/2*100, suitability, 1e-9)

	suitable, _ := vec.Get(FeatVehicleSuitable)
	require.Equal(t, 1.0, suitable)

	priority, _ := vec.Get(FeatPriorityLevel)
	require.Equal(t, 2.0, priority)

	value, _ := vec.Get(FeatOrderValue)
	require.Equal(t, 12000.0, value)

	delays, _ := vec.Get(FeatCustomerPastDelays)
	require.Equal(t, 2.0, delays)

	// 评分 0 不计入平均：(2+4)/2 = 3
	rating, _ := vec.Get(FeatCustomerAvgRating)
	require.Equal(t, 3.0, rating)
}

func TestBuildMissingReferenceErrors(t *testing.T) {
	b := NewBuilder(DefaultConfig())
	order := testOrder()

	tests := []struct {
		name     string
		route    *risk.Route
		vehicle  *risk.Vehicle
		customer *risk.Customer
		refKind  string
	}{
		{"nil route", nil, testVehicle(), testCustomer(), risk.RefKindRoute},
		{"route id mismatch", &risk.Route{ID: "RT-OTHER"}, testVehicle(), testCustomer(), risk.RefKindRoute},
		{"nil vehicle", testRoute(), nil, testCustomer(), risk.RefKindVehicle},
		{"nil customer", testRoute(), testVehicle(), nil, risk.RefKindCustomer},
		{"customer id mismatch", testRoute(), testVehicle(), &risk.Customer{ID: "CUS-OTHER"}, risk.RefKindCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Build(order, tt.route, tt.vehicle, tt.customer)
			require.Error(t, err)
			require.True(t, risk.IsMissingReference(err))
			require.Equal(t, "MISSING_REFERENCE", risk.ErrKind(err))
		})
	}
}

func TestBuildImputation(t *testing.T) {
	b := NewBuilder(DefaultConfig())

	order := testOrder()
	order.DistanceKM = 0 // 回落到线路距离
	order.Priority = "unknown"
	order.ValueINR = -50
	order.RequirementTags = nil

	route := testRoute()
	route.WeatherImpact = "Hailstorm" // 未知天气 → 0

	customer := testCustomer()
	customer.History = nil // 无历史 → 0 延误、中性评分

	vec, err := b.Build(order, route, testVehicle(), customer)
	require.NoError(t, err)

	dist, _ := vec.Get(FeatDistanceKM)
	require.Equal(t, 480.0, dist)

	priority, _ := vec.Get(FeatPriorityLevel)
	require.Equal(t, 1.0, priority) // medium

	value, _ := vec.Get(FeatOrderValue)
	require.Equal(t, 0.0, value)

	routeRisk, _ := vec.Get(FeatRouteRisk)
	require.InDelta(t, 60.0/120*0.6*100, routeRisk, 1e-9)

	delays, _ := vec.Get(FeatCustomerPastDelays)
	require.Equal(t, 0.0, delays)

	rating, _ := vec.Get(FeatCustomerAvgRating)
	require.Equal(t, NeutralRating, rating)

	suitable, _ := vec.Get(FeatVehicleSuitable)
	require.Equal(t, 1.0, suitable) // 无要求标签恒适配
}

func TestCustomerAggregatesLookbackWindow(t *testing.T) {
	// 窗口 2：只看最近两单
	b := NewBuilder(Config{LookbackWindow: 2})

	customer := &risk.Customer{
		ID:      "CUS-1",
		Segment: risk.SegmentStandard,
		History: []risk.PastDelivery{
			{OrderID: "H1", Delayed: false, Rating: 5},
			{OrderID: "H2", Delayed: false, Rating: 5},
			{OrderID: "H3", Delayed: true, Rating: 1},
			{OrderID: "H4", Delayed: true, Rating: 1},
		},
	}

	order := testOrder()
	vec, err := b.Build(order, testRoute(), testVehicle(), customer)
	require.NoError(t, err)

	delays, _ := vec.Get(FeatCustomerPastDelays)
	require.Equal(t, 0.0, delays)

	rating, _ := vec.Get(FeatCustomerAvgRating)
	require.Equal(t, 5.0, rating)
}

func TestVehicleSuitable(t *testing.T) {
	vehicle := &risk.Vehicle{CapabilityTags: []string{"refrigerated"}}

	require.True(t, VehicleSuitable(vehicle, nil))
	require.True(t, VehicleSuitable(vehicle, []string{"refrigerated"}))
	require.False(t, VehicleSuitable(vehicle, []string{"refrigerated", "oversized"}))
	require.False(t, VehicleSuitable(&risk.Vehicle{}, []string{"refrigerated"}))
}

func TestRouteRiskScoreClamped(t *testing.T) {
	// 极端拥堵 + 暴风雨也不会超过 100
	extreme := &risk.Route{TrafficDelayMinutes: 600, WeatherImpact: risk.WeatherStorm}
	require.Equal(t, 100.0, RouteRiskScore(extreme))

	calm := &risk.Route{TrafficDelayMinutes: 0, WeatherImpact: risk.WeatherClear}
	require.Equal(t, 0.0, RouteRiskScore(calm))
}

func TestVehicleSuitabilityScoreBounds(t *testing.T) {
	best := &risk.Vehicle{AgeYears: 0, FuelEfficiencyKMPerL: 25}
	require.Equal(t, 100.0, VehicleSuitabilityScore(best))

	worst := &risk.Vehicle{AgeYears: 20, FuelEfficiencyKMPerL: 0.001}
	require.InDelta(t, 0.0, VehicleSuitabilityScore(worst), 0.01)

	// 油耗未知取中性分量
	unknownEff := &risk.Vehicle{AgeYears: 0, FuelEfficiencyKMPerL: 0}
	require.Equal(t, 75.0, VehicleSuitabilityScore(unknownEff))
}
