package handlers

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/domain/discount"
	"inventory/internal/infrastructure/http/v1/dto"
)

// DiscountHandler handles HTTP requests for discounts.
type DiscountHandler struct {
	*BaseHandler
	service *discount.Service
}

// NewDiscountHandler creates a new discount handler.
func NewDiscountHandler(base *BaseHandler, service *discount.Service) *DiscountHandler {
	return &DiscountHandler{BaseHandler: base, service: service}
}

// List handles GET /discounts
func (h *DiscountHandler) List(c *gin.Context) {
	filter, ok := h.ListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromListResult(result))
}

// Get handles GET /discounts/:id
func (h *DiscountHandler) Get(c *gin.Context) {
	discountID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), discountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, d)
}

// GetByCode handles GET /discounts/code/:code
func (h *DiscountHandler) GetByCode(c *gin.Context) {
	d, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, d)
}

// Validate handles GET /discounts/validate/:code
func (h *DiscountHandler) Validate(c *gin.Context) {
	res, err := h.service.ValidateCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, res)
}

// Create handles POST /discounts
func (h *DiscountHandler) Create(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, d)
}

// Update handles PUT /discounts/:id
func (h *DiscountHandler) Update(c *gin.Context) {
	discountID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDiscountRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Update(c.Request.Context(), discountID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, d)
}

// Delete handles DELETE /discounts/:id
func (h *DiscountHandler) Delete(c *gin.Context) {
	discountID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), discountID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
