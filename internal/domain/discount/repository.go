package discount

import (
	"context"

	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// Repository defines persistence operations for discounts.
type Repository interface {
	Create(ctx context.Context, d *Discount) error
	GetByID(ctx context.Context, id id.ID) (*Discount, error)
	GetByCode(ctx context.Context, code string) (*Discount, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Discount], error)
	Update(ctx context.Context, d *Discount, columns []string) error
	Delete(ctx context.Context, id id.ID) (bool, error)
}
