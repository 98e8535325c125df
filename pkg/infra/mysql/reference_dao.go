package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"nexgen/riskops/internal/entity"
	"nexgen/riskops/internal/risk"
	"nexgen/riskops/internal/risk/pipeline"
)

// ReferenceDAO 参考数据访问对象
// worker 启动时一次性加载全部线路/车辆/客户参考数据构建目录，之后只读
type ReferenceDAO struct {
	db *gorm.DB
}

// NewReferenceDAO 创建 ReferenceDAO 实例
func NewReferenceDAO(db *gorm.DB) *ReferenceDAO {
	return &ReferenceDAO{db: db}
}

// LoadCatalog 加载参考数据目录
func (dao *ReferenceDAO) LoadCatalog(ctx context.Context) (*pipeline.Catalog, error) {
	routes, err := dao.loadRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes failed: %w", err)
	}
	vehicles, err := dao.loadVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vehicles failed: %w", err)
	}
	customers, err := dao.loadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers failed: %w", err)
	}
	return pipeline.NewCatalog(routes, vehicles, customers), nil
}

func (dao *ReferenceDAO) loadRoutes(ctx context.Context) ([]risk.Route, error) {
	var pos []entity.RouteRecord
	if err := dao.db.WithContext(ctx).Find(&pos).Error; err != nil {
		return nil, err
	}

	routes := make([]risk.Route, 0, len(pos))
	for _, po := range pos {
		routes = append(routes, risk.Route{
			ID:                  po.ID,
			TrafficDelayMinutes: po.TrafficDelayMinutes,
			WeatherImpact:       po.WeatherImpact,
			DistanceKM:          po.DistanceKM,
		})
	}
	return routes, nil
}

func (dao *ReferenceDAO) loadVehicles(ctx context.Context) ([]risk.Vehicle, error) {
	var pos []entity.VehicleRecord
	if err := dao.db.WithContext(ctx).Find(&pos).Error; err != nil {
		return nil, err
	}

	vehicles := make([]risk.Vehicle, 0, len(pos))
	for _, po := range pos {
		var tags []string
		if len(po.CapabilityTags) > 0 {
			if err := json.Unmarshal(po.CapabilityTags, &tags); err != nil {
				return nil, fmt.Errorf("unmarshal capability tags of vehicle %s failed: %w", po.ID, err)
			}
		}
		vehicles = append(vehicles, risk.Vehicle{
			ID:                   po.ID,
			Type:                 po.Type,
			AgeYears:             po.AgeYears,
			FuelEfficiencyKMPerL: po.FuelEfficiencyKMPerL,
			CapabilityTags:       tags,
		})
	}
	return vehicles, nil
}

func (dao *ReferenceDAO) loadCustomers(ctx context.Context) ([]risk.Customer, error) {
	var pos []entity.CustomerRecord
	if err := dao.db.WithContext(ctx).Find(&pos).Error; err != nil {
		return nil, err
	}

	customers := make([]risk.Customer, 0, len(pos))
	for _, po := range pos {
		var history []risk.PastDelivery
		if len(po.History) > 0 {
			if err := json.Unmarshal(po.History, &history); err != nil {
				return nil, fmt.Errorf("unmarshal history of customer %s failed: %w", po.ID, err)
			}
		}
		customers = append(customers, risk.Customer{
			ID:      po.ID,
			Segment: po.Segment,
			History: history,
		})
	}
	return customers, nil
}
