package handlers

import (
	"errors"
	"net/http"

	"cardapio/internal/services"

	"github.com/gin-gonic/gin"
)

// CustomerHandler covers registration, login and the customer portal.
type CustomerHandler struct {
	customerService services.CustomerService
	orderService    services.OrderService
}

func NewCustomerHandler(customerService services.CustomerService, orderService services.OrderService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, orderService: orderService}
}

func (h *CustomerHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	customer, err := h.customerService.Register(input)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "E-mail já cadastrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	customer, token, err := h.customerService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha inválidos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "customer": customer})
}

func (h *CustomerHandler) GetProfile(c *gin.Context) {
	customer, err := h.customerService.GetByID(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var input services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	customer, err := h.customerService.UpdateProfile(c.GetString("customer_id"), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
		case errors.Is(err, services.ErrInvalidPhotoURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": "URL de foto inválida"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}
	c.JSON(http.StatusOK, customer)
}

// ToggleFavorite flips the product in the favorites set and returns the
// updated list plus the product's resulting state.
func (h *CustomerHandler) ToggleFavorite(c *gin.Context) {
	productID := c.Param("productId")
	customer, err := h.customerService.ToggleFavorite(c.GetString("customer_id"), productID)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cliente não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"favorites":   customer.Favorites,
		"is_favorite": customer.IsFavorite(productID),
	})
}

func (h *CustomerHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrdersByCustomer(c.GetString("customer_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}
