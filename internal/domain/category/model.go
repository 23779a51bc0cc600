// Package category provides the product category catalog.
package category

import (
	"context"
	"strings"

	"inventory/internal/core/apperror"
	"inventory/internal/core/entity"
)

// Category groups products. Name is unique.
type Category struct {
	entity.BaseEntity
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	IsActive    bool   `db:"is_active" json:"isActive"`
}

// NewCategory creates a validated, active category.
func NewCategory(ctx context.Context, name, description string) (*Category, error) {
	c := &Category{
		BaseEntity:  entity.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: description,
		IsActive:    true,
	}
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}

// Patch lists the fields a category update may change.
type Patch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Apply copies the set fields onto c and returns the columns it changed.
func (p Patch) Apply(c *Category) []string {
	var columns []string
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
		columns = append(columns, "name")
	}
	if p.Description != nil {
		c.Description = *p.Description
		columns = append(columns, "description")
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
		columns = append(columns, "is_active")
	}
	c.Touch()
	return append(columns, "updated_at")
}
