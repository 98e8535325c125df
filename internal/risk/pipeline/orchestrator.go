package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"nexgen/riskops/internal/risk"
	"nexgen/riskops/internal/risk/decision"
	"nexgen/riskops/internal/risk/feature"
	"nexgen/riskops/internal/risk/inference"
)

// DefaultWorkers 批量评估的默认并发数
const DefaultWorkers = 4

// Config 编排器配置
type Config struct {
	Workers      int           // 批量评估并发数
	BatchTimeout time.Duration // 批量超时，0 表示不限时；超时后停止提交新订单，未提交的标记为跳过
}

// DefaultConfig 返回文档化默认配置
func DefaultConfig() Config {
	return Config{Workers: DefaultWorkers}
}

// Result 单个订单的完整评估产出（订单 + 评估 + 建议三元组）
type Result struct {
	Order          risk.Order          `json:"order"`
	Assessment     risk.Assessment     `json:"assessment"`
	Recommendation risk.Recommendation `json:"recommendation"`
}

// Orchestrator 评估流水线编排器
// 串联特征构建 → 两次模型推理 → 规则决策；批量时逐单独立执行，订单间无耦合
type Orchestrator struct {
	builder       *feature.Builder
	delayModel    inference.Model
	customerModel inference.Model
	engine        *decision.Engine
	cfg           Config
	now           func() time.Time

	// 跨批次累计计数（运行日志用）
	totalAssessed *atomic.Int64
	totalFailed   *atomic.Int64
}

// Stats 返回编排器生命周期内累计的成功/失败评估数
func (o *Orchestrator) Stats() (assessed, failed int64) {
	return o.totalAssessed.Load(), o.totalFailed.Load()
}

// NewOrchestrator 创建编排器
// 构造期校验两个模型的特征模式与构建器产出的兼容性；不兼容即返回 ModelLoadError，
// 属启动期致命错误，不延迟到逐单推理时暴露
func NewOrchestrator(
	builder *feature.Builder,
	delayModel inference.Model,
	customerModel inference.Model,
	engine *decision.Engine,
	cfg Config,
) (*Orchestrator, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	if err := checkSchema(delayModel, feature.Schema()); err != nil {
		return nil, err
	}
	// 客户风险模型可额外消费编排器注入的延误概率
	customerAvailable := append(feature.Schema(), feature.FeatDelayProbability)
	if err := checkSchema(customerModel, customerAvailable); err != nil {
		return nil, err
	}

	return &Orchestrator{
		builder:       builder,
		delayModel:    delayModel,
		customerModel: customerModel,
		engine:        engine,
		cfg:           cfg,
		now:           time.Now,
		totalAssessed: atomic.NewInt64(0),
		totalFailed:   atomic.NewInt64(0),
	}, nil
}

// checkSchema 模型特征模式必须是可供给特征的子集
func checkSchema(m inference.Model, available []string) error {
	known := make(map[string]struct{}, len(available))
	for _, name := range available {
		known[name] = struct{}{}
	}
	for _, name := range m.FeatureSchema() {
		if _, ok := known[name]; !ok {
			return risk.NewModelLoadError(m.Version(),
				fmt.Sprintf("declared feature %q is not produced by the feature builder", name), nil)
		}
	}
	return nil
}

// AssessOrder 对单个订单执行完整评估流水线
// 解析外键 → 构建特征 → 校验并推理延误概率 → 注入延误概率 → 校验并推理客户风险 → 规则决策
func (o *Orchestrator) AssessOrder(ctx context.Context, order *risk.Order, catalog *Catalog) (result *Result, err error) {
	defer func() {
		if err != nil {
			o.totalFailed.Inc()
		} else {
			o.totalAssessed.Inc()
		}
	}()

	route, vehicle, customer, err := catalog.Resolve(order)
	if err != nil {
		return nil, err
	}

	vec, err := o.builder.Build(order, route, vehicle, customer)
	if err != nil {
		return nil, err
	}

	if err := inference.ValidateVector(o.delayModel, vec); err != nil {
		return nil, err
	}
	delayProb, err := o.delayModel.PredictProbability(vec)
	if err != nil {
		return nil, err
	}

	// 显式注入延误概率作为客户风险模型的输入边
	vecWithDelay := vec.With(feature.FeatDelayProbability, delayProb)
	if err := inference.ValidateVector(o.customerModel, vecWithDelay); err != nil {
		return nil, err
	}
	custProb, err := o.customerModel.PredictProbability(vecWithDelay)
	if err != nil {
		return nil, err
	}

	rec, err := o.engine.Decide(decision.Input{
		DelayProbability:        delayProb,
		CustomerRiskProbability: custProb,
		Segment:                 customer.Segment,
		Order:                   order,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Order: *order,
		Assessment: risk.Assessment{
			OrderID:                 order.ID,
			DelayProbability:        delayProb,
			CustomerRiskProbability: custProb,
			DelayModelVersion:       o.delayModel.Version(),
			CustomerModelVersion:    o.customerModel.Version(),
			ComputedAt:              o.now(),
		},
		Recommendation: rec,
	}, nil
}
