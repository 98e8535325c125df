package feature

// 特征名常量（固定模式，两个模型共用同一份向量）
const (
	FeatDistanceKM         = "distance_km"
	FeatRouteRisk          = "route_risk_score"
	FeatVehicleSuitability = "vehicle_suitability_score"
	FeatVehicleSuitable    = "vehicle_suitable"
	FeatPriorityLevel      = "priority_level"
	FeatOrderValue         = "order_value"
	FeatCustomerPastDelays = "customer_past_delay_count"
	FeatCustomerAvgRating  = "customer_avg_rating"

	// FeatDelayProbability 不由 Builder 产出，由编排器在延误模型推理后注入，
	// 作为客户风险模型的显式输入边
	FeatDelayProbability = "delay_probability"
)

// Schema 返回 Builder 产出向量的固定特征顺序
func Schema() []string {
	return []string{
		FeatDistanceKM,
		FeatRouteRisk,
		FeatVehicleSuitability,
		FeatVehicleSuitable,
		FeatPriorityLevel,
		FeatOrderValue,
		FeatCustomerPastDelays,
		FeatCustomerAvgRating,
	}
}

// Vector 命名特征向量
// 特征名与顺序跨调用稳定；值一经构建不再修改，With 返回扩展后的副本
type Vector struct {
	names  []string
	values map[string]float64
}

// New 按给定顺序构造向量（names 与 values 的键必须一一对应）
func New(names []string, values map[string]float64) Vector {
	v := Vector{
		names:  make([]string, len(names)),
		values: make(map[string]float64, len(values)),
	}
	copy(v.names, names)
	for k, val := range values {
		v.values[k] = val
	}
	return v
}

// Get 按名取特征值
func (v Vector) Get(name string) (float64, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Has 判断特征是否存在
func (v Vector) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Names 返回特征名的有序副本
func (v Vector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Len 返回特征个数
func (v Vector) Len() int {
	return len(v.names)
}

// With 返回追加（或覆盖）一个特征后的新向量，原向量不变
// 新特征名追加在尾部，保持既有顺序稳定
func (v Vector) With(name string, value float64) Vector {
	out := v.Clone()
	if !out.Has(name) {
		out.names = append(out.names, name)
	}
	out.values[name] = value
	return out
}

// Clone 深拷贝
func (v Vector) Clone() Vector {
	return New(v.names, v.values)
}

// Missing 返回 required 中缺失的特征名（保持输入顺序）
func (v Vector) Missing(required []string) []string {
	var missing []string
	for _, name := range required {
		if !v.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
