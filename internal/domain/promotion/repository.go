package promotion

import (
	"context"
	"time"

	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// Repository defines persistence operations for promotions.
type Repository interface {
	Create(ctx context.Context, p *Promotion) error
	GetByID(ctx context.Context, id id.ID) (*Promotion, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Promotion], error)
	// ListActive returns active promotions whose window contains now.
	ListActive(ctx context.Context, now time.Time) ([]*Promotion, error)
	Update(ctx context.Context, p *Promotion, columns []string) error
	Delete(ctx context.Context, id id.ID) (bool, error)
}
