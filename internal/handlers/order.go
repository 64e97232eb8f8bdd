// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fastpurchase/backend/internal/services"
	"github.com/fastpurchase/backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "", []string{"No user information found"})
		return
	}

	var items []services.OrderItemRequest
	if err := c.ShouldBindJSON(&items); err != nil {
		utils.BadRequestResponse(c, "Invalid request",
			[]string{"Request body must be an array of products with productId and quantity"})
		return
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), userID, items)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Order placed successfully", result)
}

// GET /orders
func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "", []string{"No user information found"})
		return
	}

	orders, err := h.orderService.GetOrderHistory(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := "Order history retrieved successfully"
	if len(orders) == 0 {
		message = "No orders found"
	}

	utils.SuccessResponse(c, message, gin.H{
		"orders":      orders,
		"totalOrders": len(orders),
	})
}
