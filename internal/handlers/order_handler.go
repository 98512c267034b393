package handlers

import (
	"net/http"

	"cardapio/internal/services"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves order tracking for customers.
type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetComandaOrders lists the open dine-in orders for a comanda, so extra
// rounds land on the same tab.
func (h *OrderHandler) GetComandaOrders(c *gin.Context) {
	orders, err := h.orderService.GetActiveByComanda(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load comanda orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}
