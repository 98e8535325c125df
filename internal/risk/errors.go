package risk

import (
	"errors"
	"fmt"
	"strings"
)

// 参考数据类别（用于外键缺失错误定位）
const (
	RefKindRoute    = "route"
	RefKindVehicle  = "vehicle"
	RefKindCustomer = "customer"
)

// MissingReferenceError 订单外键指向不存在的参考数据
// 调用方不得用默认值静默补齐实体，必须将该订单按失败处理
type MissingReferenceError struct {
	OrderID string
	RefKind string // route/vehicle/customer
	RefID   string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("order %s references missing %s: %q", e.OrderID, e.RefKind, e.RefID)
}

// NewMissingReference 构造外键缺失错误
func NewMissingReference(orderID, refKind, refID string) *MissingReferenceError {
	return &MissingReferenceError{OrderID: orderID, RefKind: refKind, RefID: refID}
}

// IsMissingReference 判断是否为外键缺失错误（支持包装链）
func IsMissingReference(err error) bool {
	var target *MissingReferenceError
	return errors.As(err, &target)
}

// ModelLoadError 模型工件加载失败（文件缺失、内容损坏、特征契约不兼容）
// 启动期出现即为致命错误：没有可用模型就没有任何推理可做
type ModelLoadError struct {
	ModelID string
	Reason  string
	Err     error
}

func (e *ModelLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load model %s failed: %s: %v", e.ModelID, e.Reason, e.Err)
	}
	return fmt.Sprintf("load model %s failed: %s", e.ModelID, e.Reason)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// NewModelLoadError 构造模型加载错误
func NewModelLoadError(modelID, reason string, err error) *ModelLoadError {
	return &ModelLoadError{ModelID: modelID, Reason: reason, Err: err}
}

// IsModelLoad 判断是否为模型加载错误（支持包装链）
func IsModelLoad(err error) bool {
	var target *ModelLoadError
	return errors.As(err, &target)
}

// FeatureValidationError 推理前置校验失败：模型要求的特征在补齐后仍缺失
// 特征构建正确时不应出现，推理前防御性检查
type FeatureValidationError struct {
	ModelID string
	Missing []string
}

func (e *FeatureValidationError) Error() string {
	return fmt.Sprintf("model %s missing required features: %s", e.ModelID, strings.Join(e.Missing, ", "))
}

// NewFeatureValidation 构造特征校验错误
func NewFeatureValidation(modelID string, missing []string) *FeatureValidationError {
	return &FeatureValidationError{ModelID: modelID, Missing: missing}
}

// IsFeatureValidation 判断是否为特征校验错误（支持包装链）
func IsFeatureValidation(err error) bool {
	var target *FeatureValidationError
	return errors.As(err, &target)
}

// ErrNoRuleMatched 规则表穷尽后仍无规则命中（含兜底规则）
// 这是规则覆盖缺陷而非业务结果：兜底规则必须恒命中，出现该错误说明规则表被破坏
var ErrNoRuleMatched = errors.New("decision rules exhausted without a match")

// ErrKind 返回错误类别标识（用于失败标记与回调消息）
func ErrKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsMissingReference(err):
		return "MISSING_REFERENCE"
	case IsModelLoad(err):
		return "MODEL_LOAD"
	case IsFeatureValidation(err):
		return "FEATURE_VALIDATION"
	case errors.Is(err, ErrNoRuleMatched):
		return "NO_RULE_MATCHED"
	default:
		return "INTERNAL"
	}
}
