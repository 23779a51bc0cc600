package handlers

import (
	"github.com/gin-gonic/gin"

	"inventory/internal/core/apperror"
	"inventory/internal/domain/invoice"
	"inventory/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	*BaseHandler
	service *invoice.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{BaseHandler: base, service: service}
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
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

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	invoiceID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.GetByID(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// ListByCustomer handles GET /invoices/customer/:customerId
func (h *InvoiceHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := h.ParamID(c, "customerId")
	if !ok {
		return
	}

	items, err := h.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(items))
}

// ListRecent handles GET /invoices/recent/:limit
func (h *InvoiceHandler) ListRecent(c *gin.Context) {
	limit, ok := h.ParamInt(c, "limit")
	if !ok {
		return
	}
	if limit < 1 {
		h.Error(c, apperror.NewValidation("limit must be positive").WithDetail("limit", limit))
		return
	}

	items, err := h.service.ListRecent(c.Request.Context(), int(limit))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(items))
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, inv)
}

// Update handles PUT /invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	invoiceID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.Update(c.Request.Context(), invoiceID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// UpdateStatus handles PUT /invoices/:id/status/:status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	invoiceID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	inv, err := h.service.UpdateStatus(c.Request.Context(), invoiceID, invoice.Status(c.Param("status")))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, inv)
}

// Delete handles DELETE /invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), invoiceID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Send handles POST /invoices/:id/send
func (h *InvoiceHandler) Send(c *gin.Context) {
	invoiceID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	res, err := h.service.Send(c.Request.Context(), invoiceID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, res)
}
