package model

// OrderAssessCallback 订单评估回调消息（标准化）
// 用于 worker → callback consumer 的消息传递
type OrderAssessCallback struct {
	RequestID   string            `json:"request_id"`            // 对应请求的 request_id（链路追踪）
	OrderID     string            `json:"order_id"`              // 订单 ID
	Status      string            `json:"status"`                // 回调状态: SUCCESS / FAILED
	Result      *AssessResultData `json:"result,omitempty"`      // 评估结果（成功时返回）
	ErrorKind   string            `json:"error_kind,omitempty"`  // 错误类别（失败时返回）
	Error       string            `json:"error,omitempty"`       // 错误信息（失败时返回）
	ProcessedAt int64             `json:"processed_at"`          // 处理时间戳（Unix timestamp）
}

// 回调状态常量
const (
	CallbackStatusSuccess = "SUCCESS" // 评估成功
	CallbackStatusFailed  = "FAILED"  // 评估失败
)
