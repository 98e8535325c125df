package order

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"nexgen/riskops/internal/api/apimodel/request"
	"nexgen/riskops/internal/api/apimodel/response"
	"nexgen/riskops/internal/api/entity/etorder"
	"nexgen/riskops/pkg/ginx"
)

// Create 创建订单并触发风险评估
// POST /api/v1/orders?wait=10
// wait 为 Smart Wait 秒数：请求在该窗口内等待评估完成，超时返回 3001 + 轮询地址
func (h *OrderHandler) Create(c *gin.Context) {
	waitSeconds := 0
	if waitStr := c.Query("wait"); waitStr != "" {
		if w, err := strconv.Atoi(waitStr); err == nil && w > 0 {
			waitSeconds = w
		}
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	payload := req.ToOrderPayload()
	order, err := h.orderService.CreateOrder(c.Request.Context(), req.ExternalOrderNo, payload, waitSeconds)
	if err != nil {
		log.Printf("[ERROR] create order failed: %v", err)
		ginx.InternalError(c, err.Error())
		return
	}

	if order.Status == etorder.OrderStatusAssessing {
		pollURL := fmt.Sprintf("/api/v1/orders/%s", order.ID)
		ginx.Processing(c, order.ID, pollURL)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
