package handler

import (
	"errors"
	"net/http"

	"storefront/internal/domains/product/model"
	"storefront/internal/domains/product/service"
	"storefront/internal/shared/dto"
	"storefront/internal/shared/response"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(svc service.ServiceInterface) *Handler {
	return &Handler{service: svc}
}

// ListProducts - GET /products
// Query params: search, category, sort, minPrice, maxPrice, page, pageSize
func (h *Handler) ListProducts(c *gin.Context) {
	var q dto.ProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	// unknown sorts fall back to name order
	switch q.Sort {
	case dto.SortPriceAsc, dto.SortPriceDesc, dto.SortLatest:
	default:
		q.Sort = ""
	}

	var err error
	if q.MinPrice, err = priceParam(c, "minPrice"); err != nil {
		response.BadRequest(c, "minPrice must be a number")
		return
	}
	if q.MaxPrice, err = priceParam(c, "maxPrice"); err != nil {
		response.BadRequest(c, "maxPrice must be a number")
		return
	}

	page, err := h.service.ListProducts(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func priceParam(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetProduct - GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// CreateProduct - POST /products (admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	var in dto.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	logger.Info("product created", map[string]interface{}{"product_id": p.ID, "name": p.Name})
	response.Success(c, http.StatusCreated, p)
}

// UpdateProduct - PATCH /products/:id (admin)
func (h *Handler) UpdateProduct(c *gin.Context) {
	var in dto.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// DeleteProduct - DELETE /products/:id (admin)
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)
	case errors.Is(err, model.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, model.ErrUnknownCategory):
		response.BadRequest(c, "Unknown category")
	default:
		logger.Error("product handler", err)
		response.InternalServerError(c, "Internal server error")
	}
}
