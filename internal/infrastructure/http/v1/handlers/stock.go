package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory/internal/domain/stock"
	"inventory/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for stock records.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// List handles GET /stocks
func (h *StockHandler) List(c *gin.Context) {
	filter, ok := h.ListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      dto.FromStocks(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /stocks/:id
func (h *StockHandler) Get(c *gin.Context) {
	stockID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), stockID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStock(s))
}

// ListByProduct handles GET /stocks/product/:productId
func (h *StockHandler) ListByProduct(c *gin.Context) {
	productID, ok := h.ParamID(c, "productId")
	if !ok {
		return
	}

	items, err := h.service.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(dto.FromStocks(items)))
}

// ListByLocation handles GET /stocks/location/:locationId
func (h *StockHandler) ListByLocation(c *gin.Context) {
	items, err := h.service.ListByLocation(c.Request.Context(), c.Param("locationId"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(dto.FromStocks(items)))
}

// Create handles POST /stocks
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromStock(s))
}

// Update handles PUT /stocks/:id
func (h *StockHandler) Update(c *gin.Context) {
	stockID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s, err := h.service.Update(c.Request.Context(), stockID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStock(s))
}

// AdjustQuantity handles PUT /stocks/:id/quantity/:delta
func (h *StockHandler) AdjustQuantity(c *gin.Context) {
	stockID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	delta, ok := h.ParamInt(c, "delta")
	if !ok {
		return
	}

	s, err := h.service.AdjustQuantity(c.Request.Context(), stockID, delta)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStock(s))
}

// Delete handles DELETE /stocks/:id
func (h *StockHandler) Delete(c *gin.Context) {
	stockID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), stockID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Import handles POST /stocks/import (multipart field "file").
func (h *StockHandler) Import(c *gin.Context) {
	rows, ok := h.readUpload(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.service.Import(c.Request.Context(), rows))
}

// Export handles GET /stocks/export
func (h *StockHandler) Export(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	rows := make([][]any, len(items))
	for i, s := range items {
		rows[i] = stock.ExportRow(s)
	}
	h.writeWorkbook(c, "stocks.xlsx", "Stocks", stock.ExportColumns, rows)
}

// Template handles GET /stocks/template
func (h *StockHandler) Template(c *gin.Context) {
	h.writeWorkbook(c, "stocks-template.xlsx", "Stocks", stock.TemplateColumns, [][]any{stock.TemplateRow()})
}
