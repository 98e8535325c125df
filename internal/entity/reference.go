package entity

import (
	"time"

	"gorm.io/datatypes"
)

// RouteRecord 线路参考数据表
// 外部聚合任务周期性刷新，核心侧只读
type RouteRecord struct {
	ID                  string    `gorm:"column:id;primaryKey;type:varchar(64)"`
	TrafficDelayMinutes float64   `gorm:"column:traffic_delay_minutes;not null;default:0"`
	WeatherImpact       string    `gorm:"column:weather_impact;type:varchar(16);not null;default:'Clear'"`
	DistanceKM          float64   `gorm:"column:distance_km;not null;default:0"`
	UpdatedAt           time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (RouteRecord) TableName() string {
	return "routes"
}

// VehicleRecord 车辆参考数据表
type VehicleRecord struct {
	ID                   string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	Type                 string         `gorm:"column:type;type:varchar(32);not null"`
	AgeYears             float64        `gorm:"column:age_years;not null;default:0"`
	FuelEfficiencyKMPerL float64        `gorm:"column:fuel_efficiency_km_per_l;not null;default:0"`
	CapabilityTags       datatypes.JSON `gorm:"column:capability_tags;type:json"` // []string
	UpdatedAt            time.Time      `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (VehicleRecord) TableName() string {
	return "vehicles"
}

// CustomerRecord 客户参考数据表
type CustomerRecord struct {
	ID        string         `gorm:"column:id;primaryKey;type:varchar(64)"`
	Segment   string         `gorm:"column:segment;type:varchar(16);not null;default:'standard'"`
	History   datatypes.JSON `gorm:"column:history;type:json"` // []risk.PastDelivery，最近一单在前
	UpdatedAt time.Time      `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (CustomerRecord) TableName() string {
	return "customers"
}
