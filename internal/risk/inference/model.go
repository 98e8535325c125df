package inference

import (
	"nexgen/riskops/internal/risk"
	"nexgen/riskops/internal/risk/feature"
)

// Model 推理模型契约
// 两个风险模型（延误 / 客户不满）共用同一契约，测试可用确定性桩模型替换真实工件。
// 实现必须满足：
//  1. PredictProbability 确定性：相同向量 + 相同工件版本 → 相同概率
//  2. 输出恒在 [0,1]
//  3. 加载完成后只读，可被多个 worker 并发调用
type Model interface {
	// Version 工件版本标签
	Version() string

	// FeatureSchema 模型要求的特征名（有序）
	FeatureSchema() []string

	// PredictProbability 对特征向量输出概率
	PredictProbability(vec feature.Vector) (float64, error)
}

// ValidateVector 推理前置校验：模型要求的每个特征必须在向量中存在
// 缺失时返回 FeatureValidationError（列出全部缺失特征名）
func ValidateVector(m Model, vec feature.Vector) error {
	missing := vec.Missing(m.FeatureSchema())
	if len(missing) > 0 {
		return risk.NewFeatureValidation(modelID(m), missing)
	}
	return nil
}

// modelID 用于错误信息的模型标识（版本标签足够定位工件）
func modelID(m Model) string {
	return m.Version()
}
