package inference

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"nexgen/riskops/internal/risk"
	"nexgen/riskops/internal/risk/feature"
)

// ArtifactKindLogistic 当前部署唯一支持的工件类型
// 核心契约只约束 Model 接口，磁盘编码是本部署的自由选择
const ArtifactKindLogistic = "logistic"

// Artifact 模型工件的 JSON 文档结构
type Artifact struct {
	ModelID   string             `json:"model_id"`
	Version   string             `json:"version"`
	Kind      string             `json:"kind"`
	Features  []string           `json:"features"`
	Weights   map[string]float64 `json:"weights"`
	Intercept float64            `json:"intercept"`
}

// Load 从磁盘加载模型工件
// 文件缺失、内容损坏、类型未知、权重与特征不匹配时返回 ModelLoadError
func Load(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, risk.NewModelLoadError(path, "artifact not found", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse 解析模型工件文档
func Parse(r io.Reader) (Model, error) {
	var art Artifact
	if err := json.NewDecoder(r).Decode(&art); err != nil {
		return nil, risk.NewModelLoadError("unknown", "corrupt artifact", err)
	}
	return NewLogisticModel(&art)
}

// LogisticModel 逻辑回归模型
// sigmoid(intercept + Σ w_f * x_f)，按声明的特征模式逐项取值
type LogisticModel struct {
	id        string
	version   string
	features  []string
	weights   map[string]float64
	intercept float64
}

// NewLogisticModel 根据工件文档构造模型，构造时完成全部合法性检查
func NewLogisticModel(art *Artifact) (*LogisticModel, error) {
	id := art.ModelID
	if id == "" {
		id = "unknown"
	}
	if art.Kind != ArtifactKindLogistic {
		return nil, risk.NewModelLoadError(id, fmt.Sprintf("unsupported artifact kind %q", art.Kind), nil)
	}
	if art.Version == "" {
		return nil, risk.NewModelLoadError(id, "artifact version is empty", nil)
	}
	if len(art.Features) == 0 {
		return nil, risk.NewModelLoadError(id, "feature schema is empty", nil)
	}

	// 权重必须与声明的特征一一对应
	if len(art.Weights) != len(art.Features) {
		return nil, risk.NewModelLoadError(id,
			fmt.Sprintf("weight count %d does not match feature count %d", len(art.Weights), len(art.Features)), nil)
	}
	for _, name := range art.Features {
		if _, ok := art.Weights[name]; !ok {
			return nil, risk.NewModelLoadError(id, fmt.Sprintf("missing weight for feature %q", name), nil)
		}
	}

	features := make([]string, len(art.Features))
	copy(features, art.Features)
	weights := make(map[string]float64, len(art.Weights))
	for k, v := range art.Weights {
		weights[k] = v
	}

	return &LogisticModel{
		id:        id,
		version:   fmt.Sprintf("%s@%s", id, art.Version),
		features:  features,
		weights:   weights,
		intercept: art.Intercept,
	}, nil
}

// Version 实现 Model 接口
func (m *LogisticModel) Version() string {
	return m.version
}

// FeatureSchema 实现 Model 接口，返回有序副本
func (m *LogisticModel) FeatureSchema() []string {
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

// PredictProbability 实现 Model 接口
// 向量缺少模式内特征时返回 FeatureValidationError（防御性检查，编排器应已先校验）
func (m *LogisticModel) PredictProbability(vec feature.Vector) (float64, error) {
	if err := ValidateVector(m, vec); err != nil {
		return 0, err
	}

	z := m.intercept
	for _, name := range m.features {
		val, _ := vec.Get(name)
		z += m.weights[name] * val
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
