package domains

import (
	"nexgen/riskops/internal/domains/common"
	"nexgen/riskops/internal/domains/handlers/order/assess"
	"nexgen/riskops/internal/model"
)

// HandlerMap 路由表（ActionType → Handler 映射）
var HandlerMap = map[string]common.HandlerServProc{
	model.ActionTypeOrderAssess: assess.NewAssessHandler,

	// 未来扩展示例：
	// "batch_assess": batch.NewBatchAssessHandler,
}
