package order

import (
	"log"

	"github.com/gin-gonic/gin"

	"nexgen/riskops/internal/api/apimodel/response"
	"nexgen/riskops/pkg/ginx"
)

// Get 获取订单详情（含评估结果）
// GET /api/v1/orders/:id
// 创建订单返回 code=3001 时，通过此接口轮询结果
func (h *OrderHandler) Get(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order_id required")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		log.Printf("[ERROR] get order failed: %v", err)
		ginx.NotFound(c, "order not found")
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
