package response

import (
	"nexgen/riskops/internal/domains/common/job"
	"nexgen/riskops/pkg/errorutil"
)

// 评估结果状态常量
const (
	AssessStatusSuccess = "SUCCESS"
	AssessStatusFailed  = "FAILED"
)

// AssessResult 评估结果（实现 ResultI 接口）
type AssessResult struct {
	ID     string           `json:"id"`
	Status string           `json:"status"`
	Data   interface{}      `json:"data"`
	Error  *errorutil.Error `json:"error,omitempty"`
}

// NewAssessResult 创建评估结果
func NewAssessResult() *AssessResult {
	return &AssessResult{}
}

// Set 实现 ResultI 接口
func (r *AssessResult) Set(meta *job.Meta, err error) {
	r.ID = meta.ID
	if err != nil {
		r.Status = AssessStatusFailed
		r.Error = errorutil.Wrap(err)
	} else {
		r.Status = AssessStatusSuccess
	}
}

// GetStatus 实现 ResultI 接口
func (r *AssessResult) GetStatus() string {
	return r.Status
}
