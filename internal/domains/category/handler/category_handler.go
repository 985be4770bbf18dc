package handler

import (
	"net/http"

	"storefront/internal/domains/category"
	"storefront/internal/shared/response"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
	}
}

// ========== LIST: GET /categories ==========
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		logger.Error("list categories", err)
		response.InternalServerError(c, "Failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}
