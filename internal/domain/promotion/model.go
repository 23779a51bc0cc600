// Package promotion provides time-boxed marketing campaigns.
package promotion

import (
	"context"
	"strings"
	"time"

	"inventory/internal/core/apperror"
	"inventory/internal/core/entity"
	"inventory/internal/core/id"
)

// Promotion is a campaign, optionally tied to a discount.
type Promotion struct {
	entity.BaseEntity
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	StartDate   time.Time `db:"start_date" json:"startDate"`
	EndDate     time.Time `db:"end_date" json:"endDate"`
	DiscountID  *id.ID    `db:"discount_id" json:"discountId,omitempty"`
	BannerImage string    `db:"banner_image" json:"bannerImage"`
	IsActive    bool      `db:"is_active" json:"isActive"`
}

// CreateInput holds the fields accepted when creating a promotion.
type CreateInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	DiscountID  *id.ID
	BannerImage string
	IsActive    *bool
}

// NewPromotion creates a validated promotion. IsActive defaults to true.
func NewPromotion(ctx context.Context, in CreateInput) (*Promotion, error) {
	p := &Promotion{
		BaseEntity:  entity.NewBaseEntity(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		StartDate:   in.StartDate.UTC(),
		EndDate:     in.EndDate.UTC(),
		DiscountID:  in.DiscountID,
		BannerImage: in.BannerImage,
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
func (p *Promotion) Validate(ctx context.Context) error {
	switch {
	case p.Name == "":
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	case p.StartDate.IsZero() || p.EndDate.IsZero():
		return apperror.NewValidation("startDate and endDate are required").WithDetail("field", "startDate")
	case p.EndDate.Before(p.StartDate):
		return apperror.NewValidation("endDate must not be before startDate").WithDetail("field", "endDate")
	}
	return nil
}

// IsActiveAt reports whether the promotion runs at now (window inclusive).
func (p *Promotion) IsActiveAt(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// Patch lists the fields a promotion update may change.
type Patch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	DiscountID  *id.ID
	BannerImage *string
	IsActive    *bool
}

// Apply copies the set fields onto p and returns the columns it changed.
func (pt Patch) Apply(p *Promotion) []string {
	var columns []string
	if pt.Name != nil {
		p.Name = strings.TrimSpace(*pt.Name)
		columns = append(columns, "name")
	}
	if pt.Description != nil {
		p.Description = *pt.Description
		columns = append(columns, "description")
	}
	if pt.StartDate != nil {
		p.StartDate = pt.StartDate.UTC()
		columns = append(columns, "start_date")
	}
	if pt.EndDate != nil {
		p.EndDate = pt.EndDate.UTC()
		columns = append(columns, "end_date")
	}
	if pt.DiscountID != nil {
		p.DiscountID = pt.DiscountID
		columns = append(columns, "discount_id")
	}
	if pt.BannerImage != nil {
		p.BannerImage = *pt.BannerImage
		columns = append(columns, "banner_image")
	}
	if pt.IsActive != nil {
		p.IsActive = *pt.IsActive
		columns = append(columns, "is_active")
	}
	p.Touch()
	return append(columns, "updated_at")
}
