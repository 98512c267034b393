package handlers

import (
	"errors"
	"net/http"

	"cardapio/internal/middlewares"
	"cardapio/internal/services"

	"github.com/gin-gonic/gin"
)

// CartHandler works on the cart identified by the X-Cart-Session header.
// The session id is minted by the client and passed on every call.
type CartHandler struct {
	cartService     services.CartService
	checkoutService services.CheckoutService
}

func NewCartHandler(cartService services.CartService, checkoutService services.CheckoutService) *CartHandler {
	return &CartHandler{cartService: cartService, checkoutService: checkoutService}
}

type cartItemRequest struct {
	ProductID string                    `json:"product_id" binding:"required"`
	Extras    []services.ExtraSelection `json:"extras"`
	Notes     string                    `json:"notes"`
}

type cartQuantityRequest struct {
	ProductID string                    `json:"product_id" binding:"required"`
	Quantity  int                       `json:"quantity"`
	Extras    []services.ExtraSelection `json:"extras"`
	Notes     string                    `json:"notes"`
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Cart-Session")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-Session header"})
		return "", false
	}
	return id, true
}

func (h *CartHandler) GetCart(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.cartService.Get(session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cartService.AddItem(session, req.ProductID, req.Extras, req.Notes)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// QuickAdd adds one unit of the product with no extras and no notes. It
// merges into the plain line only, never into a customized one.
func (h *CartHandler) QuickAdd(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.cartService.QuickAdd(session, c.Param("id"))
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	var req cartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cartService.SetQuantity(session, req.ProductID, req.Quantity, req.Extras, req.Notes)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.cartService.RemoveItem(session, req.ProductID, req.Extras, req.Notes)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

// Checkout turns the session cart into an order. Validation failures come
// back with the offending field so the client can highlight it; the cart is
// never touched on failure.
func (h *CartHandler) Checkout(c *gin.Context) {
	session, ok := sessionID(c)
	if !ok {
		return
	}

	var input services.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	input.CustomerID = c.GetString("customer_id")

	result, err := h.checkoutService.Checkout(session, input)
	if err != nil {
		middlewares.RecordOrderOperation("checkout", false)

		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"field": vErr.Field, "error": vErr.Message})
			return
		}
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Seu carrinho está vazio"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível enviar seu pedido. Tente novamente."})
		return
	}

	middlewares.RecordOrderOperation("checkout", true)
	c.JSON(http.StatusCreated, gin.H{
		"order":        result.Order,
		"summary":      result.Summary,
		"whatsapp_url": result.WhatsAppURL,
	})
}

func (h *CartHandler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
	case errors.Is(err, services.ErrProductUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produto indisponível no momento"})
	case errors.Is(err, services.ErrAdditionalNotFound),
		errors.Is(err, services.ErrAdditionalNotAllowed),
		errors.Is(err, services.ErrAdditionalQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}
