package response

import "time"

// OrderResponse 订单响应（DTO）
type OrderResponse struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	ExternalOrderNo string          `json:"external_order_no"`
	Status          string          `json:"status"`
	Assessment      *Assessment     `json:"assessment,omitempty"`
	Recommendation  *Recommendation `json:"recommendation,omitempty"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Assessment 风险评估结果（DTO）
type Assessment struct {
	DelayProbability        float64   `json:"delay_probability"`
	CustomerRiskProbability float64   `json:"customer_risk_probability"`
	DelayModelVersion       string    `json:"delay_model_version"`
	CustomerModelVersion    string    `json:"customer_model_version"`
	ComputedAt              time.Time `json:"computed_at"`
}

// Recommendation 运营动作建议（DTO）
type Recommendation struct {
	ActionCode    string `json:"action_code"`
	RuleID        string `json:"rule_id"`
	PriorityRank  int    `json:"priority_rank"`
	Reason        string `json:"reason"`
	CostImpact    string `json:"cost_impact"`
	ServiceImpact string `json:"service_impact"`
}

// OrderListResponse 订单列表响应（DTO）
type OrderListResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Total  int64            `json:"total"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
}
