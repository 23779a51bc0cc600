package category

import (
	"context"

	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// Repository defines persistence operations for categories.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id id.ID) (*Category, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error)
	Update(ctx context.Context, c *Category, columns []string) error
	// Delete removes the category; false when it did not exist.
	Delete(ctx context.Context, id id.ID) (bool, error)
}
