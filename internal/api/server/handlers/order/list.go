package order

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"nexgen/riskops/internal/api/apimodel/response"
	"nexgen/riskops/pkg/ginx"
)

// List 订单列表查询
// GET /api/v1/orders?customer_id=CUS-1001&page=1&limit=20
func (h *OrderHandler) List(c *gin.Context) {
	customerID := c.Query("customer_id")

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), customerID, page, limit)
	if err != nil {
		log.Printf("[ERROR] list orders failed: %v", err)
		ginx.InternalError(c, err.Error())
		return
	}

	ginx.Success(c, response.FromOrderEntities(orders, total, page, limit))
}
