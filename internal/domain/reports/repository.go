package reports

import (
	"context"
	"time"

	"inventory/internal/core/id"
	"inventory/internal/domain/invoice"
	"inventory/internal/domain/product"
	"inventory/internal/domain/stock"
)

// Repository defines report data access interface.
type Repository interface {
	// InvoicesByStatus returns every invoice with status created within r.
	InvoicesByStatus(ctx context.Context, status invoice.Status, r Range) ([]*invoice.Invoice, error)

	// ProductsByIDs returns the existing products among ids.
	ProductsByIDs(ctx context.Context, ids []id.ID) ([]*product.Product, error)

	// AllStocks returns every stock record in creation order.
	AllStocks(ctx context.Context) ([]*stock.Stock, error)
}

// Cache stores computed reports for a short time. Implementations must be safe
// for concurrent use; a miss returns false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Generation returns the invalidation counter. It moves on every
	// invalidation, so a report computed before the move must not be stored.
	Generation(ctx context.Context) (int64, error)

	// Set stores value only while the counter still equals generation and
	// reports whether it did.
	Set(ctx context.Context, key string, value any, ttl time.Duration, generation int64) (bool, error)
}
