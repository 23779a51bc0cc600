package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory/internal/domain/product"
	"inventory/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
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
		Items:      dto.FromProducts(result.Items),
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// ListByCategory handles GET /products/category/:categoryId
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := h.ParamID(c, "categoryId")
	if !ok {
		return
	}

	items, err := h.service.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.Items(dto.FromProducts(items)))
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromProduct(p))
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	productID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), productID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProduct(p))
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Import handles POST /products/import (multipart field "file").
func (h *ProductHandler) Import(c *gin.Context) {
	rows, ok := h.readUpload(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.service.Import(c.Request.Context(), rows))
}

// Export handles GET /products/export
func (h *ProductHandler) Export(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	rows := make([][]any, len(items))
	for i, p := range items {
		rows[i] = product.ExportRow(p)
	}
	h.writeWorkbook(c, "products.xlsx", "Products", product.ExportColumns, rows)
}

// Template handles GET /products/template
func (h *ProductHandler) Template(c *gin.Context) {
	h.writeWorkbook(c, "products-template.xlsx", "Products", product.TemplateColumns, [][]any{product.TemplateRow()})
}
