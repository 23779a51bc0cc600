package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"inventory/internal/domain/reports"
	"inventory/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Sales handles GET /reports/sales
func (h *ReportsHandler) Sales(c *gin.Context) {
	runRanged(h, c, h.service.Sales)
}

// Returns handles GET /reports/returns
func (h *ReportsHandler) Returns(c *gin.Context) {
	runRanged(h, c, h.service.Returns)
}

// ProductSales handles GET /reports/product-sales
func (h *ReportsHandler) ProductSales(c *gin.Context) {
	runRanged(h, c, h.service.ProductSales)
}

// Profit handles GET /reports/profit
func (h *ReportsHandler) Profit(c *gin.Context) {
	runRanged(h, c, h.service.Profit)
}

// Stock handles GET /reports/stock
func (h *ReportsHandler) Stock(c *gin.Context) {
	var req dto.ReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	rows, err := h.service.Stock(c.Request.Context(), req.Threshold())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(rows))
}

func runRanged[T any](h *ReportsHandler, c *gin.Context, report func(context.Context, reports.Range) ([]T, error)) {
	var req dto.ReportRequest
	if !h.BindQuery(c, &req) {
		return
	}
	start, end, err := req.Bounds()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := report(c.Request.Context(), h.service.ResolveRange(start, end))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(rows))
}
