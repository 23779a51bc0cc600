package dto

import (
	"time"

	"inventory/internal/core/id"
	"inventory/internal/core/types"
	"inventory/internal/domain/category"
	"inventory/internal/domain/discount"
	"inventory/internal/domain/product"
	"inventory/internal/domain/promotion"
)

// --- Category ---

// CreateCategoryRequest for creating categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest for updating categories.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// ToPatch converts to domain patch.
func (r *UpdateCategoryRequest) ToPatch() category.Patch {
	return category.Patch{Name: r.Name, Description: r.Description, IsActive: r.IsActive}
}

// --- Product ---

// CreateProductRequest for creating products.
type CreateProductRequest struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	SKU         string      `json:"sku" binding:"required"`
	Barcode     string      `json:"barcode"`
	Price       types.Money `json:"price"`
	CostPrice   types.Money `json:"costPrice"`
	CategoryID  id.ID       `json:"categoryId"`
	ImageURL    string      `json:"imageUrl"`
	IsActive    *bool       `json:"isActive"`
}

// ToInput converts to domain input.
func (r *CreateProductRequest) ToInput() product.CreateInput {
	return product.CreateInput{
		Name:        r.Name,
		Description: r.Description,
		SKU:         r.SKU,
		Barcode:     r.Barcode,
		Price:       r.Price,
		CostPrice:   r.CostPrice,
		CategoryID:  r.CategoryID,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
	}
}

// UpdateProductRequest for updating products.
type UpdateProductRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	SKU         *string      `json:"sku"`
	Barcode     *string      `json:"barcode"`
	Price       *types.Money `json:"price"`
	CostPrice   *types.Money `json:"costPrice"`
	CategoryID  *id.ID       `json:"categoryId"`
	ImageURL    *string      `json:"imageUrl"`
	IsActive    *bool        `json:"isActive"`
}

// ToPatch converts to domain patch.
func (r *UpdateProductRequest) ToPatch() product.Patch {
	return product.Patch{
		Name:        r.Name,
		Description: r.Description,
		SKU:         r.SKU,
		Barcode:     r.Barcode,
		Price:       r.Price,
		CostPrice:   r.CostPrice,
		CategoryID:  r.CategoryID,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
	}
}

// ProductResponse adds the derived profit figures to a product.
type ProductResponse struct {
	*product.Product
	Profit       types.Money `json:"profit"`
	ProfitMargin types.Money `json:"profitMargin"`
}

// FromProduct creates response from domain product.
func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		Product:      p,
		Profit:       p.Profit(),
		ProfitMargin: p.ProfitMargin(),
	}
}

// FromProducts maps a slice of products.
func FromProducts(ps []*product.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = FromProduct(p)
	}
	return out
}

// --- Discount ---

// CreateDiscountRequest for creating discounts.
type CreateDiscountRequest struct {
	Name            string        `json:"name" binding:"required"`
	Description     string        `json:"description"`
	Type            discount.Type `json:"type" binding:"required,oneof=percentage fixed"`
	Value           types.Money   `json:"value"`
	Code            *string       `json:"code"`
	StartDate       time.Time     `json:"startDate" binding:"required"`
	EndDate         time.Time     `json:"endDate" binding:"required"`
	IsActive        *bool         `json:"isActive"`
	MinimumPurchase *types.Money  `json:"minimumPurchase"`
	MaximumDiscount *types.Money  `json:"maximumDiscount"`
	ProductIDs      []id.ID       `json:"productIds"`
	CategoryIDs     []id.ID       `json:"categoryIds"`
}

// ToInput converts to domain input.
func (r *CreateDiscountRequest) ToInput() discount.CreateInput {
	return discount.CreateInput{
		Name:            r.Name,
		Description:     r.Description,
		Type:            r.Type,
		Value:           r.Value,
		Code:            r.Code,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IsActive:        r.IsActive,
		MinimumPurchase: r.MinimumPurchase,
		MaximumDiscount: r.MaximumDiscount,
		ProductIDs:      r.ProductIDs,
		CategoryIDs:     r.CategoryIDs,
	}
}

// UpdateDiscountRequest for updating discounts.
type UpdateDiscountRequest struct {
	Name            *string        `json:"name"`
	Description     *string        `json:"description"`
	Type            *discount.Type `json:"type" binding:"omitempty,oneof=percentage fixed"`
	Value           *types.Money   `json:"value"`
	Code            *string        `json:"code"`
	StartDate       *time.Time     `json:"startDate"`
	EndDate         *time.Time     `json:"endDate"`
	IsActive        *bool          `json:"isActive"`
	MinimumPurchase *types.Money   `json:"minimumPurchase"`
	MaximumDiscount *types.Money   `json:"maximumDiscount"`
	ProductIDs      *[]id.ID       `json:"productIds"`
	CategoryIDs     *[]id.ID       `json:"categoryIds"`

	// Set to remove a previously configured limit.
	ClearMinimumPurchase bool `json:"clearMinimumPurchase"`
	ClearMaximumDiscount bool `json:"clearMaximumDiscount"`
}

// ToPatch converts to domain patch.
func (r *UpdateDiscountRequest) ToPatch() discount.Patch {
	return discount.Patch{
		Name:            r.Name,
		Description:     r.Description,
		Type:            r.Type,
		Value:           r.Value,
		Code:            r.Code,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IsActive:        r.IsActive,
		MinimumPurchase: r.MinimumPurchase,
		MaximumDiscount: r.MaximumDiscount,
		ProductIDs:      r.ProductIDs,
		CategoryIDs:     r.CategoryIDs,

		ClearMinimumPurchase: r.ClearMinimumPurchase,
		ClearMaximumDiscount: r.ClearMaximumDiscount,
	}
}

// --- Promotion ---

// CreatePromotionRequest for creating promotions.
type CreatePromotionRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	DiscountID  *id.ID    `json:"discountId"`
	BannerImage string    `json:"bannerImage"`
	IsActive    *bool     `json:"isActive"`
}

// ToInput converts to domain input.
func (r *CreatePromotionRequest) ToInput() promotion.CreateInput {
	return promotion.CreateInput{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		DiscountID:  r.DiscountID,
		BannerImage: r.BannerImage,
		IsActive:    r.IsActive,
	}
}

// UpdatePromotionRequest for updating promotions.
type UpdatePromotionRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	DiscountID  *id.ID     `json:"discountId"`
	BannerImage *string    `json:"bannerImage"`
	IsActive    *bool      `json:"isActive"`
}

// ToPatch converts to domain patch.
func (r *UpdatePromotionRequest) ToPatch() promotion.Patch {
	return promotion.Patch{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		DiscountID:  r.DiscountID,
		BannerImage: r.BannerImage,
		IsActive:    r.IsActive,
	}
}
