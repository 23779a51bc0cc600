package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"inventory/internal/domain"
	"inventory/internal/domain/discount"
	"inventory/internal/infrastructure/storage/postgres"
)

const discountTable = "discounts"

// DiscountRepo implements discount.Repository.
type DiscountRepo struct {
	*postgres.BaseRepo[discount.Discount]
}

var _ discount.Repository = (*DiscountRepo)(nil)

// NewDiscountRepo creates a new discount repository.
func NewDiscountRepo(txm *postgres.TxManager) *DiscountRepo {
	return &DiscountRepo{
		BaseRepo: postgres.NewBaseRepo[discount.Discount](txm, discountTable, "discount", "name", "code"),
	}
}

func (r *DiscountRepo) Create(ctx context.Context, d *discount.Discount) error {
	return r.Insert(ctx, d)
}

// GetByCode finds a discount by its unique promo code.
func (r *DiscountRepo) GetByCode(ctx context.Context, code string) (*discount.Discount, error) {
	return r.GetOne(ctx, r.SelectQuery().Where(squirrel.Eq{"code": code}), code)
}

func (r *DiscountRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*discount.Discount], error) {
	return r.BaseRepo.List(ctx, r.SelectQuery(), filter)
}

func (r *DiscountRepo) Update(ctx context.Context, d *discount.Discount, columns []string) error {
	return r.UpdateColumns(ctx, d.ID, d, columns)
}
