package response

import (
	"nexgen/riskops/internal/api/entity/etorder"
)

// FromOrderEntity 从领域对象转换为响应 DTO
func FromOrderEntity(order *etorder.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		ExternalOrderNo: order.ExternalOrderNo,
		Status:          string(order.Status),
		ErrorMessage:    order.ErrorMessage,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	if order.AssessResult != nil {
		a := order.AssessResult.Assessment
		resp.Assessment = &Assessment{
			DelayProbability:        a.DelayProbability,
			CustomerRiskProbability: a.CustomerRiskProbability,
			DelayModelVersion:       a.DelayModelVersion,
			CustomerModelVersion:    a.CustomerModelVersion,
			ComputedAt:              a.ComputedAt,
		}
		r := order.AssessResult.Recommendation
		resp.Recommendation = &Recommendation{
			ActionCode:    r.ActionCode,
			RuleID:        r.RuleID,
			PriorityRank:  r.PriorityRank,
			Reason:        r.Reason,
			CostImpact:    r.CostImpact,
			ServiceImpact: r.ServiceImpact,
		}
	}

	return resp
}

// FromOrderEntities 订单列表转换
func FromOrderEntities(orders []*etorder.Order, total int64, page, limit int) *OrderListResponse {
	items := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, FromOrderEntity(o))
	}
	return &OrderListResponse{
		Orders: items,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}
}
