package handlers

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/core/apperror"
	"inventory/internal/domain/audit"
	"inventory/internal/infrastructure/http/v1/dto"
)

// AuditHandler exposes the change history of invoices and stock records.
type AuditHandler struct {
	*BaseHandler
	recorder audit.Recorder
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, recorder audit.Recorder) *AuditHandler {
	return &AuditHandler{BaseHandler: base, recorder: recorder}
}

// History handles GET /audit/:entityType/:entityId?limit=N
func (h *AuditHandler) History(c *gin.Context) {
	entityType := c.Param("entityType")
	if entityType != audit.EntityInvoice && entityType != audit.EntityStock {
		h.Error(c, apperror.NewValidation("unknown entity type").WithDetail("entityType", entityType))
		return
	}
	entityID, ok := h.ParamID(c, "entityId")
	if !ok {
		return
	}

	var q struct {
		Limit int `form:"limit" binding:"min=0,max=1000"`
	}
	if !h.BindQuery(c, &q) {
		return
	}

	entries, err := h.recorder.GetEntityHistory(c.Request.Context(), entityType, entityID, q.Limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(entries))
}
