package catalog_repo

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"inventory/internal/domain"
	"inventory/internal/domain/promotion"
	"inventory/internal/infrastructure/storage/postgres"
)

const promotionTable = "promotions"

// PromotionRepo implements promotion.Repository.
type PromotionRepo struct {
	*postgres.BaseRepo[promotion.Promotion]
}

var _ promotion.Repository = (*PromotionRepo)(nil)

// NewPromotionRepo creates a new promotion repository.
func NewPromotionRepo(txm *postgres.TxManager) *PromotionRepo {
	return &PromotionRepo{
		BaseRepo: postgres.NewBaseRepo[promotion.Promotion](txm, promotionTable, "promotion", "name", "description"),
	}
}

func (r *PromotionRepo) Create(ctx context.Context, p *promotion.Promotion) error {
	return r.Insert(ctx, p)
}

func (r *PromotionRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*promotion.Promotion], error) {
	return r.BaseRepo.List(ctx, r.SelectQuery(), filter)
}

// ListActive returns active promotions running at now, soonest ending first.
func (r *PromotionRepo) ListActive(ctx context.Context, now time.Time) ([]*promotion.Promotion, error) {
	return r.SelectAll(ctx, r.activeQuery(now))
}

func (r *PromotionRepo) activeQuery(now time.Time) squirrel.SelectBuilder {
	return r.SelectQuery().
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.LtOrEq{"start_date": now}).
		Where(squirrel.GtOrEq{"end_date": now}).
		OrderBy("end_date ASC")
}

func (r *PromotionRepo) Update(ctx context.Context, p *promotion.Promotion, columns []string) error {
	return r.UpdateColumns(ctx, p.ID, p, columns)
}
