package handler

import (
	"errors"
	"net/http"

	"storefront/internal/domains/cart/model"
	"storefront/internal/domains/cart/service"
	productModel "storefront/internal/domains/product/model"
	"storefront/internal/shared/dto"
	"storefront/internal/shared/middleware"
	"storefront/internal/shared/response"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Handler handles HTTP requests for the signed-in user's cart
type Handler struct {
	service service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{service: svc}
}

// GetCart - GET /cart
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// AddItem - POST /cart
func (h *Handler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// UpdateItem - PATCH /cart/:itemId
func (h *Handler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cart, err := h.service.UpdateItem(c.Request.Context(), middleware.GetUserID(c), c.Param("itemId"), req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// RemoveItem - DELETE /cart/:itemId
func (h *Handler) RemoveItem(c *gin.Context) {
	cart, err := h.service.RemoveItem(c.Request.Context(), middleware.GetUserID(c), c.Param("itemId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// ClearCart - DELETE /cart
func (h *Handler) ClearCart(c *gin.Context) {
	cart, err := h.service.ClearCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)
	case errors.Is(err, productModel.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, model.ErrCartItemNotFound):
		response.NotFound(c, "Cart item not found")
	case errors.Is(err, model.ErrOutOfStock):
		response.Conflict(c, "Product is out of stock")
	default:
		logger.Error("cart handler", err)
		response.InternalServerError(c, "Internal server error")
	}
}
