package model

import "nexgen/riskops/internal/risk"

// AssessResultData 单个订单的评估结果数据
// 持久化到订单表 assess_result 列，也作为 Smart Wait 通知负载
type AssessResultData struct {
	Assessment     risk.Assessment     `json:"assessment"`
	Recommendation risk.Recommendation `json:"recommendation"`
}
