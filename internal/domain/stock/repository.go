package stock

import (
	"context"

	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// Repository defines persistence operations for stock records.
type Repository interface {
	Create(ctx context.Context, s *Stock) error
	GetByID(ctx context.Context, id id.ID) (*Stock, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Stock], error)
	ListAll(ctx context.Context) ([]*Stock, error)
	// ListByProduct returns the product's records in a stable order (creation order).
	ListByProduct(ctx context.Context, productID id.ID) ([]*Stock, error)
	ListByLocation(ctx context.Context, locationID string) ([]*Stock, error)
	GetByProductAndLocation(ctx context.Context, productID id.ID, locationID string) (*Stock, error)
	// Update writes only columns, leaving concurrent quantity adjustments intact.
	Update(ctx context.Context, s *Stock, columns []string) error
	// AdjustQuantity adds delta to the quantity in one statement and returns the new row.
	// A result below zero is rejected by the store.
	AdjustQuantity(ctx context.Context, id id.ID, delta int64) (*Stock, error)
	Delete(ctx context.Context, id id.ID) (bool, error)
}
