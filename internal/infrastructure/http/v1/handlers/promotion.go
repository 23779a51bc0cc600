package handlers

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/domain/promotion"
	"inventory/internal/infrastructure/http/v1/dto"
)

// PromotionHandler handles HTTP requests for promotions.
type PromotionHandler struct {
	*BaseHandler
	service *promotion.Service
}

// NewPromotionHandler creates a new promotion handler.
func NewPromotionHandler(base *BaseHandler, service *promotion.Service) *PromotionHandler {
	return &PromotionHandler{BaseHandler: base, service: service}
}

// List handles GET /promotions
func (h *PromotionHandler) List(c *gin.Context) {
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

// Active handles GET /promotions/active
func (h *PromotionHandler) Active(c *gin.Context) {
	items, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(items))
}

// Get handles GET /promotions/:id
func (h *PromotionHandler) Get(c *gin.Context) {
	promotionID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), promotionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// Create handles POST /promotions
func (h *PromotionHandler) Create(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, p)
}

// Update handles PUT /promotions/:id
func (h *PromotionHandler) Update(c *gin.Context) {
	promotionID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePromotionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), promotionID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}

// Delete handles DELETE /promotions/:id
func (h *PromotionHandler) Delete(c *gin.Context) {
	promotionID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), promotionID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
