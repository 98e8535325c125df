package decision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nexgen/riskops/internal/risk"
)

func TestDecideRuleTable(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	tests := []struct {
		name       string
		delay      float64
		custRisk   float64
		segment    string
		wantRule   string
		wantAction string
	}{
		// R1：高延误 + critical 分层
		{"r1 critical high delay", 0.85, 0.2, risk.SegmentCritical, RuleEscalate, ActionEscalatePriority},
		{"r1 wins over r2 when both match", 0.9, 0.9, risk.SegmentCritical, RuleEscalate, ActionEscalatePriority},

		// R2：高延误 + 高客户风险，动作随分层变化
		{"r2 priority segment", 0.85, 0.6, risk.SegmentPriority, RuleHighRisk, ActionAssignNewerVehicle},
		{"r2 standard segment", 0.85, 0.6, risk.SegmentStandard, RuleHighRisk, ActionProactiveContact},

		// R3：中等延误
		{"r3 high delay low customer risk", 0.85, 0.3, risk.SegmentStandard, RuleMonitor, ActionMonitor},
		{"r3 medium delay", 0.7, 0.9, risk.SegmentStandard, RuleMonitor, ActionMonitor},
		{"r3 just above medium", 0.61, 0.0, risk.SegmentCritical, RuleMonitor, ActionMonitor},

		// 兜底
		{"default zero risk", 0.0, 0.0, risk.SegmentStandard, RuleDefault, ActionNoAction},
		{"default just below medium", 0.59, 0.9, risk.SegmentCritical, RuleDefault, ActionNoAction},

		// 阈值为排他下界：恰好等于阈值不触发
		{"delay exactly high threshold", 0.80, 0.9, risk.SegmentCritical, RuleMonitor, ActionMonitor},
		{"delay exactly medium threshold", 0.60, 0.9, risk.SegmentStandard, RuleDefault, ActionNoAction},
		{"customer risk exactly threshold", 0.85, 0.50, risk.SegmentStandard, RuleMonitor, ActionMonitor},
		{"just above customer threshold", 0.85, 0.51, risk.SegmentStandard, RuleHighRisk, ActionProactiveContact},

		// 边界外值
		{"delay probability one", 1.0, 1.0, risk.SegmentCritical, RuleEscalate, ActionEscalatePriority},
		{"delay probability one standard", 1.0, 1.0, risk.SegmentStandard, RuleHighRisk, ActionProactiveContact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := e.Decide(Input{
				DelayProbability:        tt.delay,
				CustomerRiskProbability: tt.custRisk,
				Segment:                 tt.segment,
				Order:                   &risk.Order{ID: "ORD-1"},
			})
			require.NoError(t, err)
			require.Equal(t, tt.wantRule, rec.RuleID)
			require.Equal(t, tt.wantAction, rec.ActionCode)
			require.Equal(t, "ORD-1", rec.OrderID)
		})
	}
}

func TestDecideAlwaysProducesExactlyOneRule(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	// 概率网格 × 分层全组合：恒产出
	probs := []float64{0, 0.3, 0.5, 0.59, 0.6, 0.61, 0.79, 0.8, 0.81, 1}
	segments := []string{risk.SegmentStandard, risk.SegmentPriority, risk.SegmentCritical, ""}

	for _, delay := range probs {
		for _, cust := range probs {
			for _, seg := range segments {
				rec, err := e.Decide(Input{
					DelayProbability:        delay,
					CustomerRiskProbability: cust,
					Segment:                 seg,
				})
				require.NoError(t, err)
				require.NotEmpty(t, rec.RuleID)
				require.NotEmpty(t, rec.ActionCode)
				require.Positive(t, rec.PriorityRank)
			}
		}
	}
}

func TestDecidePriorityRankMatchesRulePosition(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	rec, err := e.Decide(Input{DelayProbability: 0.9, Segment: risk.SegmentCritical})
	require.NoError(t, err)
	require.Equal(t, 1, rec.PriorityRank)

	rec, err = e.Decide(Input{DelayProbability: 0.9, CustomerRiskProbability: 0.6, Segment: risk.SegmentStandard})
	require.NoError(t, err)
	require.Equal(t, 2, rec.PriorityRank)

	rec, err = e.Decide(Input{DelayProbability: 0.7})
	require.NoError(t, err)
	require.Equal(t, 3, rec.PriorityRank)

	rec, err = e.Decide(Input{})
	require.NoError(t, err)
	require.Equal(t, 4, rec.PriorityRank)
}

func TestDecideCarriesActionMeta(t *testing.T) {
	e := NewEngine(DefaultThresholds())

	rec, err := e.Decide(Input{DelayProbability: 0.9, Segment: risk.SegmentCritical})
	require.NoError(t, err)

	meta := MetaFor(ActionEscalatePriority)
	require.Equal(t, meta.Reason, rec.Reason)
	require.Equal(t, meta.CostImpact, rec.CostImpact)
	require.Equal(t, meta.ServiceImpact, rec.ServiceImpact)
}

func TestDecideCustomThresholds(t *testing.T) {
	e := NewEngine(Thresholds{DelayHigh: 0.5, DelayMedium: 0.3, CustomerRisk: 0.2})

	rec, err := e.Decide(Input{DelayProbability: 0.55, CustomerRiskProbability: 0.25, Segment: risk.SegmentStandard})
	require.NoError(t, err)
	require.Equal(t, RuleHighRisk, rec.RuleID)

	rec, err = e.Decide(Input{DelayProbability: 0.35})
	require.NoError(t, err)
	require.Equal(t, RuleMonitor, rec.RuleID)
}

func TestDecideNoRuleMatchedWhenTableBroken(t *testing.T) {
	// 兜底规则被移除后规则表不再穷尽，必须显式报错而非静默空动作
	e := NewEngine(DefaultThresholds())
	e.rules = e.rules[:len(e.rules)-1]

	_, err := e.Decide(Input{DelayProbability: 0.1})
	require.ErrorIs(t, err, risk.ErrNoRuleMatched)
	require.Equal(t, "NO_RULE_MATCHED", risk.ErrKind(err))
}
