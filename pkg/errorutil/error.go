package errorutil

import (
	"fmt"

	"nexgen/riskops/internal/risk"
)

// Error 错误结构（包含可重试标记与核心错误类别）
type Error struct {
	Code       int    `json:"code"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	DevDetails string `json:"dev_details,omitempty"`
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return e.Message
}

// Retriable 创建可重试错误（网络错误、临时故障等）
func Retriable(message string) *Error {
	return &Error{
		Code:      500,
		Message:   message,
		Retryable: true,
	}
}

// RetriableWithDetails 创建可重试错误（带详细信息）
func RetriableWithDetails(message string, details string) *Error {
	return &Error{
		Code:       500,
		Message:    message,
		Retryable:  true,
		DevDetails: details,
	}
}

// NonRetriable 创建不可重试错误（参数错误、业务规则错误等）
func NonRetriable(message string) *Error {
	return &Error{
		Code:      400,
		Message:   message,
		Retryable: false,
	}
}

// Wrap 包装错误（按核心错误类别判断是否可重试）
// 评估类错误（外键缺失、特征校验、规则覆盖缺陷）重试不会变好，标记为不可重试；
// 其余默认不可重试，队列侧交由 TTR 机制兜底
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	// 已经是 Error 类型，直接返回
	if e, ok := err.(*Error); ok {
		return e
	}

	return &Error{
		Code:       500,
		Kind:       risk.ErrKind(err),
		Message:    err.Error(),
		Retryable:  false,
		DevDetails: fmt.Sprintf("%+v", err),
	}
}
