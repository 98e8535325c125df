package decision

// 运营动作码
const (
	ActionEscalatePriority   = "ESCALATE_PRIORITY"
	ActionAssignNewerVehicle = "ASSIGN_NEWER_VEHICLE"
	ActionProactiveContact   = "PROACTIVE_CUSTOMER_CONTACT"
	ActionMonitor            = "MONITOR"
	ActionNoAction           = "NO_ACTION"
)

// 规则 ID（与返回给调用方的 rationale 一致）
const (
	RuleEscalate = "R1"
	RuleHighRisk = "R2"
	RuleMonitor  = "R3"
	RuleDefault  = "R_DEFAULT"
)

// ActionMeta 动作目录的附加说明
// 随 Recommendation 一并输出，供运营侧展示成本与服务影响
type ActionMeta struct {
	Reason        string
	CostImpact    string
	ServiceImpact string
}

// actionCatalog 动作码到附加说明的固定目录
var actionCatalog = map[string]ActionMeta{
	ActionEscalatePriority: {
		Reason:        "High delay risk on a critical customer",
		CostImpact:    "High",
		ServiceImpact: "Protects critical account SLA",
	},
	ActionAssignNewerVehicle: {
		Reason:        "High delay and dissatisfaction risk; vehicle swap reduces breakdown exposure",
		CostImpact:    "Medium",
		ServiceImpact: "Improves on-time likelihood",
	},
	ActionProactiveContact: {
		Reason:        "High delay and dissatisfaction risk; early notice reduces complaint likelihood",
		CostImpact:    "Low",
		ServiceImpact: "Manages customer expectation",
	},
	ActionMonitor: {
		Reason:        "Moderate delay risk; watch for escalation",
		CostImpact:    "Low",
		ServiceImpact: "None",
	},
	ActionNoAction: {
		Reason:        "Risk within normal operating range",
		CostImpact:    "None",
		ServiceImpact: "None",
	},
}

// MetaFor 查询动作附加说明，未登记的动作返回零值
func MetaFor(actionCode string) ActionMeta {
	return actionCatalog[actionCode]
}
