package model

import "nexgen/riskops/internal/risk"

// ActionTypeOrderAssess 订单风险评估任务的动作类型（路由键）
const ActionTypeOrderAssess = "order_assess"

// OrderAssessJob 订单评估任务消息（标准化）
// 用于 apiserver → worker 的消息传递
type OrderAssessJob struct {
	Payload OrderAssessPayload `json:"payload"`
}

// OrderAssessPayload Job 负载
type OrderAssessPayload struct {
	Data OrderAssessData `json:"data"`
}

// OrderAssessData Job 数据层
type OrderAssessData struct {
	// 元信息
	RequestID  string `json:"request_id"`  // 请求 ID（全链路追踪）
	OrgID      string `json:"org_id"`      // 组织 ID（MVP 固定为 "0"）
	ActionType string `json:"action_type"` // 动作类型，固定值 "order_assess"
	ID         string `json:"id"`          // 订单 ID

	// 业务数据
	Data OrderAssessBusinessData `json:"data"`
}

// OrderAssessBusinessData 订单评估业务数据
// 订单行随消息内联传递，worker 不回查订单表取输入；
// 线路/车辆/客户参考数据由 worker 启动时加载的目录解析
type OrderAssessBusinessData struct {
	OrderID string     `json:"order_id"`
	Order   risk.Order `json:"order"`
}
