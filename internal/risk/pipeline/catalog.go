package pipeline

import (
	"nexgen/riskops/internal/risk"
)

// Catalog 参考数据目录（线路/车辆/客户按 ID 索引）
// 构建完成后只读，可被多个 worker 并发查询
type Catalog struct {
	routes    map[string]*risk.Route
	vehicles  map[string]*risk.Vehicle
	customers map[string]*risk.Customer
}

// NewCatalog 按切片构建目录，重复 ID 后者覆盖前者
func NewCatalog(routes []risk.Route, vehicles []risk.Vehicle, customers []risk.Customer) *Catalog {
	c := &Catalog{
		routes:    make(map[string]*risk.Route, len(routes)),
		vehicles:  make(map[string]*risk.Vehicle, len(vehicles)),
		customers: make(map[string]*risk.Customer, len(customers)),
	}
	for i := range routes {
		c.routes[routes[i].ID] = &routes[i]
	}
	for i := range vehicles {
		c.vehicles[vehicles[i].ID] = &vehicles[i]
	}
	for i := range customers {
		c.customers[customers[i].ID] = &customers[i]
	}
	return c
}

// Resolve 按订单外键解析参考实体
// 任一外键悬空返回 MissingReferenceError，调用方不得静默补齐实体
func (c *Catalog) Resolve(order *risk.Order) (*risk.Route, *risk.Vehicle, *risk.Customer, error) {
	route, ok := c.routes[order.RouteID]
	if !ok {
		return nil, nil, nil, risk.NewMissingReference(order.ID, risk.RefKindRoute, order.RouteID)
	}
	vehicle, ok := c.vehicles[order.VehicleID]
	if !ok {
		return nil, nil, nil, risk.NewMissingReference(order.ID, risk.RefKindVehicle, order.VehicleID)
	}
	customer, ok := c.customers[order.CustomerID]
	if !ok {
		return nil, nil, nil, risk.NewMissingReference(order.ID, risk.RefKindCustomer, order.CustomerID)
	}
	return route, vehicle, customer, nil
}

// Size 返回各类参考数据条数（加载日志用）
func (c *Catalog) Size() (routes, vehicles, customers int) {
	return len(c.routes), len(c.vehicles), len(c.customers)
}
