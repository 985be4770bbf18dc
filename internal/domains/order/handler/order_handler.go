package handler

import (
	"errors"
	"net/http"

	"storefront/internal/domains/order/model"
	"storefront/internal/domains/order/service"
	productModel "storefront/internal/domains/product/model"
	"storefront/internal/shared/dto"
	"storefront/internal/shared/middleware"
	"storefront/internal/shared/response"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Handler struct {
	service service.OrderService
}

func NewHandler(svc service.OrderService) *Handler {
	return &Handler{service: svc}
}

// Checkout - POST /checkout
func (h *Handler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Checkout(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// CreateOrder - POST /orders
func (h *Handler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, order)
}

// ListOrders - GET /orders
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, orders)
}

// GetOrder - GET /orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// UpdateStatus - PATCH /orders/:id (admin)
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	logger.Info("order status updated", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
		"admin_id": middleware.GetUserID(c),
	})
	response.Success(c, http.StatusOK, order)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var (
		verrs    validation.Errors
		shortage *productModel.StockShortage
	)
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)
	case errors.Is(err, model.ErrCartEmpty):
		response.BadRequest(c, "Your cart is empty")
	case errors.Is(err, model.ErrCartMismatch):
		response.BadRequest(c, "Cart mismatch")
	case errors.As(err, &shortage):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Insufficient stock", shortage)
	case errors.Is(err, productModel.ErrInsufficientStock), errors.Is(err, model.ErrInvalidTransition):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrOrderNotFound), errors.Is(err, productModel.ErrProductNotFound):
		response.NotFound(c, "Order not found")
	case errors.Is(err, model.ErrOrderForbidden):
		response.Forbidden(c, "Forbidden")
	default:
		logger.Error("order handler", err)
		response.InternalServerError(c, "Internal server error")
	}
}
