package handlers

import (
	"errors"
	"net/http"

	"cardapio/internal/models"
	"cardapio/internal/repository"
	"cardapio/internal/services"

	"github.com/gin-gonic/gin"
)

// MenuHandler serves the public catalog and store info.
type MenuHandler struct {
	catalogService services.CatalogService
	settingsRepo   repository.SettingsRepository
}

func NewMenuHandler(catalogService services.CatalogService, settingsRepo repository.SettingsRepository) *MenuHandler {
	return &MenuHandler{catalogService: catalogService, settingsRepo: settingsRepo}
}

func (h *MenuHandler) ListProducts(c *gin.Context) {
	category := models.Category(c.Query("category"))
	onlyAvailable := c.Query("all") != "true"

	products, err := h.catalogService.ListProducts(category, onlyAvailable)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria inválida"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *MenuHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *MenuHandler) ListAdditionals(c *gin.Context) {
	additionals, err := h.catalogService.ListAdditionals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list additionals"})
		return
	}
	c.JSON(http.StatusOK, additionals)
}

// ProductAdditionals returns only the available extras whose category the
// product accepts.
func (h *MenuHandler) ProductAdditionals(c *gin.Context) {
	additionals, err := h.catalogService.AdditionalsForProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list additionals"})
		return
	}
	c.JSON(http.StatusOK, additionals)
}

// StoreInfo exposes the customer-facing subset of the store settings.
func (h *MenuHandler) StoreInfo(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load store settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subtitle":            settings.StoreSubtitle,
		"pickup_address":      settings.PickupAddress,
		"show_product_images": settings.ShowProductImages,
		"instagram_url":       settings.InstagramURL,
		"business_hours":      settings.BusinessHours,
		"special_dates":       settings.SpecialDates,
	})
}
