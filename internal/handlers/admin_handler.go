package handlers

import (
	"errors"
	"net/http"
	"time"

	"cardapio/internal/middlewares"
	"cardapio/internal/models"
	"cardapio/internal/repository"
	"cardapio/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler backs the dashboard: catalog management, store settings,
// order queue and sales figures.
type AdminHandler struct {
	catalogService services.CatalogService
	orderService   services.OrderService
	reportService  services.ReportService
	settingsRepo   repository.SettingsRepository
}

func NewAdminHandler(
	catalogService services.CatalogService,
	orderService services.OrderService,
	reportService services.ReportService,
	settingsRepo repository.SettingsRepository,
) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		orderService:   orderService,
		reportService:  reportService,
		settingsRepo:   settingsRepo,
	}
}

// Product management

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalogService.CreateProduct(&product); err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria inválida"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	product.ID = c.Param("id")

	if err := h.catalogService.UpdateProduct(&product); err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		case errors.Is(err, services.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria inválida"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Additional management

func (h *AdminHandler) CreateAdditional(c *gin.Context) {
	var additional models.Additional
	if err := c.ShouldBindJSON(&additional); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.catalogService.CreateAdditional(&additional); err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria de adicional inválida"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create additional"})
		return
	}
	c.JSON(http.StatusCreated, additional)
}

func (h *AdminHandler) UpdateAdditional(c *gin.Context) {
	var additional models.Additional
	if err := c.ShouldBindJSON(&additional); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	additional.ID = c.Param("id")

	if err := h.catalogService.UpdateAdditional(&additional); err != nil {
		switch {
		case errors.Is(err, services.ErrAdditionalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Adicional não encontrado"})
		case errors.Is(err, services.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria de adicional inválida"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update additional"})
		}
		return
	}
	c.JSON(http.StatusOK, additional)
}

func (h *AdminHandler) DeleteAdditional(c *gin.Context) {
	if err := h.catalogService.DeleteAdditional(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete additional"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Store settings

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.settingsRepo.Save(&settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Order queue

func (h *AdminHandler) ListOrders(c *gin.Context) {
	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status inválido"})
			return
		}
		orders, err := h.orderService.GetOrdersByStatus(status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus advances an order through its lifecycle. Backward moves
// and changes to settled orders are rejected.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orderService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		middlewares.RecordOrderOperation("status_update", false)
		if errors.Is(err, models.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
		return
	}

	middlewares.RecordOrderOperation("status_update", true)
	c.JSON(http.StatusOK, order)
}

// Reports

func (h *AdminHandler) ReportsSummary(c *gin.Context) {
	summary, err := h.reportService.DashboardSummary(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
