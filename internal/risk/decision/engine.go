package decision

import (
	"nexgen/riskops/internal/risk"
)

// 阈值默认值（命名配置常量，运营调参只改配置不改规则逻辑）
const (
	DefaultDelayHigh    = 0.80
	DefaultDelayMedium  = 0.60
	DefaultCustomerRisk = 0.50
)

// Thresholds 规则阈值配置
// 所有阈值均为排他下界：概率恰好等于阈值不触发该规则
type Thresholds struct {
	DelayHigh    float64 // 高延误风险阈值
	DelayMedium  float64 // 中延误风险阈值
	CustomerRisk float64 // 客户不满风险阈值
}

// DefaultThresholds 返回文档化默认阈值
func DefaultThresholds() Thresholds {
	return Thresholds{
		DelayHigh:    DefaultDelayHigh,
		DelayMedium:  DefaultDelayMedium,
		CustomerRisk: DefaultCustomerRisk,
	}
}

// Input 单次决策输入
// CustomerRiskProbability 可合法消费延误模型输出（显式无环依赖，由编排器注入）
type Input struct {
	DelayProbability        float64
	CustomerRiskProbability float64
	Segment                 string
	Order                   *risk.Order
}

// rule 有序规则表的一项
// action 按输入选择动作码（R2 的动作随客户分层变化）
type rule struct {
	id     string
	match  func(Input) bool
	action func(Input) string
}

// Engine 决策引擎
// 规则表固定有序，逐条求值，首条命中即返回（短路，不取并集）
type Engine struct {
	thresholds Thresholds
	rules      []rule
}

// NewEngine 创建决策引擎
func NewEngine(th Thresholds) *Engine {
	e := &Engine{thresholds: th}
	e.rules = []rule{
		{
			id: RuleEscalate,
			match: func(in Input) bool {
				return in.DelayProbability > th.DelayHigh && in.Segment == risk.SegmentCritical
			},
			action: func(Input) string { return ActionEscalatePriority },
		},
		{
			id: RuleHighRisk,
			match: func(in Input) bool {
				return in.DelayProbability > th.DelayHigh && in.CustomerRiskProbability > th.CustomerRisk
			},
			action: func(in Input) string {
				if in.Segment == risk.SegmentPriority {
					return ActionAssignNewerVehicle
				}
				return ActionProactiveContact
			},
		},
		{
			id: RuleMonitor,
			match: func(in Input) bool {
				return in.DelayProbability > th.DelayMedium
			},
			action: func(Input) string { return ActionMonitor },
		},
		{
			id:     RuleDefault,
			match:  func(Input) bool { return true },
			action: func(Input) string { return ActionNoAction },
		},
	}
	return e
}

// Thresholds 返回引擎当前阈值
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Decide 对单个订单做出动作决策
// 恒产出且可解释：恰好一条规则命中，返回其 ID；规则表穷尽无命中（兜底被破坏）
// 返回 ErrNoRuleMatched 而非静默空动作——无命中是缺陷，不是业务结果
func (e *Engine) Decide(in Input) (risk.Recommendation, error) {
	orderID := ""
	if in.Order != nil {
		orderID = in.Order.ID
	}

	for i, r := range e.rules {
		if !r.match(in) {
			continue
		}
		code := r.action(in)
		meta := MetaFor(code)
		return risk.Recommendation{
			OrderID:       orderID,
			ActionCode:    code,
			RuleID:        r.id,
			PriorityRank:  i + 1,
			Reason:        meta.Reason,
			CostImpact:    meta.CostImpact,
			ServiceImpact: meta.ServiceImpact,
		}, nil
	}

	return risk.Recommendation{}, risk.ErrNoRuleMatched
}
