// Package product provides the product catalog and its spreadsheet import rules.
package product

import (
	"context"
	"strings"

	"inventory/internal/core/apperror"
	"inventory/internal/core/entity"
	"inventory/internal/core/id"
	"inventory/internal/core/types"
)

// Product is a sellable catalog item. SKU is unique.
type Product struct {
	entity.BaseEntity
	Name        string      `db:"name" json:"name"`
	Description string      `db:"description" json:"description"`
	SKU         string      `db:"sku" json:"sku"`
	Barcode     string      `db:"barcode" json:"barcode"`
	Price       types.Money `db:"price" json:"price"`
	CostPrice   types.Money `db:"cost_price" json:"costPrice"`
	CategoryID  id.ID       `db:"category_id" json:"categoryId"`
	ImageURL    string      `db:"image_url" json:"imageUrl"`
	IsActive    bool        `db:"is_active" json:"isActive"`
}

// CreateInput holds the fields accepted when creating a product.
type CreateInput struct {
	Name        string
	Description string
	SKU         string
	Barcode     string
	Price       types.Money
	CostPrice   types.Money
	CategoryID  id.ID
	ImageURL    string
	IsActive    *bool
}

// NewProduct creates a validated product. IsActive defaults to true.
func NewProduct(ctx context.Context, in CreateInput) (*Product, error) {
	p := &Product{
		BaseEntity:  entity.NewBaseEntity(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		SKU:         strings.TrimSpace(in.SKU),
		Barcode:     in.Barcode,
		Price:       in.Price,
		CostPrice:   in.CostPrice,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	switch {
	case p.Name == "":
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	case p.SKU == "":
		return apperror.NewValidation("sku is required").WithDetail("field", "sku")
	case id.IsNil(p.CategoryID):
		return apperror.NewValidation("categoryId is required").WithDetail("field", "categoryId")
	case p.Price.IsNegative():
		return apperror.NewValidation("price must not be negative").WithDetail("field", "price")
	case p.CostPrice.IsNegative():
		return apperror.NewValidation("costPrice must not be negative").WithDetail("field", "costPrice")
	}
	return nil
}

// Profit returns price minus cost price.
func (p *Product) Profit() types.Money {
	return p.Price.Sub(p.CostPrice)
}

// ProfitMargin returns profit as a percentage of price, 0 when price is 0.
func (p *Product) ProfitMargin() types.Money {
	return types.Percent(p.Profit(), p.Price)
}

// Patch lists the fields a product update may change.
type Patch struct {
	Name        *string
	Description *string
	SKU         *string
	Barcode     *string
	Price       *types.Money
	CostPrice   *types.Money
	CategoryID  *id.ID
	ImageURL    *string
	IsActive    *bool
}

// Apply copies the set fields onto p and returns the columns it changed.
func (pt Patch) Apply(p *Product) []string {
	var columns []string
	if pt.Name != nil {
		p.Name = strings.TrimSpace(*pt.Name)
		columns = append(columns, "name")
	}
	if pt.Description != nil {
		p.Description = *pt.Description
		columns = append(columns, "description")
	}
	if pt.SKU != nil {
		p.SKU = strings.TrimSpace(*pt.SKU)
		columns = append(columns, "sku")
	}
	if pt.Barcode != nil {
		p.Barcode = *pt.Barcode
		columns = append(columns, "barcode")
	}
	if pt.Price != nil {
		p.Price = *pt.Price
		columns = append(columns, "price")
	}
	if pt.CostPrice != nil {
		p.CostPrice = *pt.CostPrice
		columns = append(columns, "cost_price")
	}
	if pt.CategoryID != nil {
		p.CategoryID = *pt.CategoryID
		columns = append(columns, "category_id")
	}
	if pt.ImageURL != nil {
		p.ImageURL = *pt.ImageURL
		columns = append(columns, "image_url")
	}
	if pt.IsActive != nil {
		p.IsActive = *pt.IsActive
		columns = append(columns, "is_active")
	}
	p.Touch()
	return append(columns, "updated_at")
}
