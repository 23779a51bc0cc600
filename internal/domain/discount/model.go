// Package discount provides price reductions and their evaluation rules.
package discount

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"inventory/internal/core/apperror"
	"inventory/internal/core/entity"
	"inventory/internal/core/id"
	"inventory/internal/core/types"
)

// Type is the discount calculation kind.
type Type string

const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

// IsValid reports whether t is a known discount type.
func (t Type) IsValid() bool {
	return t == TypePercentage || t == TypeFixed
}

// Discount is a price reduction, optionally redeemable by code.
type Discount struct {
	entity.BaseEntity
	Name            string       `db:"name" json:"name"`
	Description     string       `db:"description" json:"description"`
	Type            Type         `db:"type" json:"type"`
	Value           types.Money  `db:"value" json:"value"`
	Code            *string      `db:"code" json:"code,omitempty"`
	StartDate       time.Time    `db:"start_date" json:"startDate"`
	EndDate         time.Time    `db:"end_date" json:"endDate"`
	IsActive        bool         `db:"is_active" json:"isActive"`
	MinimumPurchase *types.Money `db:"minimum_purchase" json:"minimumPurchase,omitempty"`
	MaximumDiscount *types.Money `db:"maximum_discount" json:"maximumDiscount,omitempty"`
	ProductIDs      []id.ID      `db:"product_ids" json:"productIds"`
	CategoryIDs     []id.ID      `db:"category_ids" json:"categoryIds"`
}

// CreateInput holds the fields accepted when creating a discount.
type CreateInput struct {
	Name            string
	Description     string
	Type            Type
	Value           types.Money
	Code            *string
	StartDate       time.Time
	EndDate         time.Time
	IsActive        *bool
	MinimumPurchase *types.Money
	MaximumDiscount *types.Money
	ProductIDs      []id.ID
	CategoryIDs     []id.ID
}

// NewDiscount creates a validated discount. IsActive defaults to true.
func NewDiscount(ctx context.Context, in CreateInput) (*Discount, error) {
	d := &Discount{
		BaseEntity:      entity.NewBaseEntity(),
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Type:            in.Type,
		Value:           in.Value,
		Code:            normalizeCode(in.Code),
		StartDate:       in.StartDate.UTC(),
		EndDate:         in.EndDate.UTC(),
		IsActive:        true,
		MinimumPurchase: in.MinimumPurchase,
		MaximumDiscount: in.MaximumDiscount,
		ProductIDs:      nonNilIDs(in.ProductIDs),
		CategoryIDs:     nonNilIDs(in.CategoryIDs),
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if err := d.Validate(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate implements entity.Validatable.
func (d *Discount) Validate(ctx context.Context) error {
	switch {
	case d.Name == "":
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	case !d.Type.IsValid():
		return apperror.NewValidation("type must be percentage or fixed").WithDetail("field", "type")
	case d.Value.IsNegative():
		return apperror.NewValidation("value must not be negative").WithDetail("field", "value")
	case d.StartDate.IsZero() || d.EndDate.IsZero():
		return apperror.NewValidation("startDate and endDate are required").WithDetail("field", "startDate")
	case d.EndDate.Before(d.StartDate):
		return apperror.NewValidation("endDate must not be before startDate").WithDetail("field", "endDate")
	}
	return nil
}

// IsValid reports whether the discount can be applied at now.
// Both ends of the window are inclusive.
func (d *Discount) IsValid(now time.Time) bool {
	return d.IsActive && !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// CalculateDiscount returns the amount taken off price.
// Percentage discounts are capped by a positive MaximumDiscount; fixed
// discounts never exceed price.
func (d *Discount) CalculateDiscount(price types.Money) types.Money {
	if d.Type == TypePercentage {
		amount := price.Mul(d.Value).Div(decimal.NewFromInt(100))
		if d.MaximumDiscount != nil && d.MaximumDiscount.IsPositive() {
			return types.MinMoney(amount, *d.MaximumDiscount)
		}
		return amount
	}
	return types.MinMoney(d.Value, price)
}

// Patch lists the fields a discount update may change.
type Patch struct {
	Name            *string
	Description     *string
	Type            *Type
	Value           *types.Money
	Code            *string
	StartDate       *time.Time
	EndDate         *time.Time
	IsActive        *bool
	MinimumPurchase *types.Money
	MaximumDiscount *types.Money
	ProductIDs      *[]id.ID
	CategoryIDs     *[]id.ID

	// ClearMinimumPurchase and ClearMaximumDiscount reset the limit to
	// none. A value set in the same patch takes precedence.
	ClearMinimumPurchase bool
	ClearMaximumDiscount bool
}

// Apply copies the set fields onto d and returns the columns it changed.
func (p Patch) Apply(d *Discount) []string {
	var columns []string
	if p.Name != nil {
		d.Name = strings.TrimSpace(*p.Name)
		columns = append(columns, "name")
	}
	if p.Description != nil {
		d.Description = *p.Description
		columns = append(columns, "description")
	}
	if p.Type != nil {
		d.Type = *p.Type
		columns = append(columns, "type")
	}
	if p.Value != nil {
		d.Value = *p.Value
		columns = append(columns, "value")
	}
	if p.Code != nil {
		d.Code = normalizeCode(p.Code)
		columns = append(columns, "code")
	}
	if p.StartDate != nil {
		d.StartDate = p.StartDate.UTC()
		columns = append(columns, "start_date")
	}
	if p.EndDate != nil {
		d.EndDate = p.EndDate.UTC()
		columns = append(columns, "end_date")
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
		columns = append(columns, "is_active")
	}
	if p.MinimumPurchase != nil || p.ClearMinimumPurchase {
		d.MinimumPurchase = p.MinimumPurchase
		columns = append(columns, "minimum_purchase")
	}
	if p.MaximumDiscount != nil || p.ClearMaximumDiscount {
		d.MaximumDiscount = p.MaximumDiscount
		columns = append(columns, "maximum_discount")
	}
	if p.ProductIDs != nil {
		d.ProductIDs = nonNilIDs(*p.ProductIDs)
		columns = append(columns, "product_ids")
	}
	if p.CategoryIDs != nil {
		d.CategoryIDs = nonNilIDs(*p.CategoryIDs)
		columns = append(columns, "category_ids")
	}
	d.Touch()
	return append(columns, "updated_at")
}

// normalizeCode maps blank codes to nil so the unique index ignores them.
func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.TrimSpace(*code)
	if c == "" {
		return nil
	}
	return &c
}

func nonNilIDs(ids []id.ID) []id.ID {
	if ids == nil {
		return []id.ID{}
	}
	return ids
}
