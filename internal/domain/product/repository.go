package product

import (
	"context"

	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// Repository defines persistence operations for products.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id id.ID) (*Product, error)
	// GetByIDs returns the products that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []id.ID) ([]*Product, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)
	ListAll(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, categoryID id.ID) ([]*Product, error)
	Update(ctx context.Context, p *Product, columns []string) error
	Delete(ctx context.Context, id id.ID) (bool, error)
}
