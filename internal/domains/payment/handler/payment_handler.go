package handler

import (
	"errors"
	"net/http"

	orderModel "storefront/internal/domains/order/model"
	"storefront/internal/domains/payment/model"
	"storefront/internal/domains/payment/service"
	"storefront/internal/shared/dto"
	"storefront/internal/shared/response"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries the shared webhook secret
const SignatureHeader = "X-MockPay-Signature"

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{service: svc}
}

// MockPaymentWebhook - POST /webhooks/mock-payments
func (h *Handler) MockPaymentWebhook(c *gin.Context) {
	var req dto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.service.HandleWebhook(c.Request.Context(), c.GetHeader(SignatureHeader), req)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, order)
	case errors.Is(err, model.ErrInvalidSignature):
		response.Unauthorized(c, "Invalid signature")
	case errors.Is(err, orderModel.ErrOrderNotFound):
		response.NotFound(c, "Order not found")
	case errors.Is(err, orderModel.ErrInvalidTransition):
		response.Conflict(c, err.Error())
	default:
		logger.Error("payment webhook", err)
		response.InternalServerError(c, "Internal server error")
	}
}
