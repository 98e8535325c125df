package pipeline

import (
	"context"
	"sync"

	"nexgen/riskops/internal/risk"
)

// Failure 批量中单个订单的失败标记
// 失败订单不产出三元组，但对调用方可见、可追责，不会被静默丢弃
type Failure struct {
	OrderID   string `json:"order_id"`
	ErrorKind string `json:"error_kind"`
	Error     string `json:"error"`
}

// BatchResult 批量评估产出
// Results 无序（订单间本就无顺序约定），Skipped 为超时后未提交的订单
type BatchResult struct {
	Results  []Result  `json:"results"`
	Failures []Failure `json:"failures"`
	Skipped  []string  `json:"skipped"`
}

// Summary 批次 KPI 聚合（供看板协作方展示）
type Summary struct {
	Assessed             int            `json:"assessed"`
	Failed               int            `json:"failed"`
	Skipped              int            `json:"skipped"`
	HighRiskCount        int            `json:"high_risk_count"`
	ActionCounts         map[string]int `json:"action_counts"`
	MeanDelayProbability float64        `json:"mean_delay_probability"`
}

// AssessBatch 批量评估
// 逐单独立的并行 map：worker 池并发执行，订单间无共享可变状态；
// 单个订单失败记为失败标记而不中止批次；超时仅停止提交新订单并把剩余订单标记为跳过
func (o *Orchestrator) AssessBatch(ctx context.Context, orders []risk.Order, catalog *Catalog) *BatchResult {
	if o.cfg.BatchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.BatchTimeout)
		defer cancel()
	}

	jobs := make(chan *risk.Order)
	out := &BatchResult{}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < o.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for order := range jobs {
				result, err := o.AssessOrder(ctx, order, catalog)
				mu.Lock()
				if err != nil {
					out.Failures = append(out.Failures, Failure{
						OrderID:   order.ID,
						ErrorKind: risk.ErrKind(err),
						Error:     err.Error(),
					})
				} else {
					out.Results = append(out.Results, *result)
				}
				mu.Unlock()
			}
		}()
	}

	// 提交循环：超时后不再提交，剩余订单记为跳过
	submitted := 0
submit:
	for i := range orders {
		select {
		case jobs <- &orders[i]:
			submitted++
		case <-ctx.Done():
			break submit
		}
	}
	close(jobs)
	wg.Wait()

	for i := submitted; i < len(orders); i++ {
		out.Skipped = append(out.Skipped, orders[i].ID)
	}

	return out
}

// Summarize 计算批次 KPI
// 高风险口径与规则阈值一致：延误概率超过 DelayHigh 视为高风险
func (o *Orchestrator) Summarize(batch *BatchResult) Summary {
	s := Summary{
		Assessed:     len(batch.Results),
		Failed:       len(batch.Failures),
		Skipped:      len(batch.Skipped),
		ActionCounts: make(map[string]int),
	}

	th := o.engine.Thresholds()
	sum := 0.0
	for _, r := range batch.Results {
		sum += r.Assessment.DelayProbability
		if r.Assessment.DelayProbability > th.DelayHigh {
			s.HighRiskCount++
		}
		s.ActionCounts[r.Recommendation.ActionCode]++
	}
	if len(batch.Results) > 0 {
		s.MeanDelayProbability = sum / float64(len(batch.Results))
	}
	return s
}
