// Package register_repo provides the PostgreSQL stock register.
package register_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/internal/domain/stock"
	"inventory/internal/infrastructure/storage/postgres"
)

const stockTable = "stocks"

// StockRepo implements stock.Repository.
// Quantities never go below zero: the table carries CHECK (quantity >= 0),
// which MapError turns into a BadRequest.
type StockRepo struct {
	*postgres.BaseRepo[stock.Stock]
}

var _ stock.Repository = (*StockRepo)(nil)

// NewStockRepo creates a new stock repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		BaseRepo: postgres.NewBaseRepo[stock.Stock](txm, stockTable, "stock", "location_id", "batch_number"),
	}
}

func (r *StockRepo) Create(ctx context.Context, s *stock.Stock) error {
	return r.Insert(ctx, s)
}

func (r *StockRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*stock.Stock], error) {
	return r.BaseRepo.List(ctx, r.SelectQuery(), filter)
}

func (r *StockRepo) ListAll(ctx context.Context) ([]*stock.Stock, error) {
	return r.SelectAll(ctx, r.SelectQuery().OrderBy("created_at ASC", "id ASC"))
}

// ListByProduct returns the product's records in creation order.
// Invoice deduction consumes them in this order.
func (r *StockRepo) ListByProduct(ctx context.Context, productID id.ID) ([]*stock.Stock, error) {
	return r.SelectAll(ctx, r.byProductQuery(productID))
}

func (r *StockRepo) byProductQuery(productID id.ID) squirrel.SelectBuilder {
	return r.SelectQuery().
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at ASC", "id ASC")
}

func (r *StockRepo) ListByLocation(ctx context.Context, locationID string) ([]*stock.Stock, error) {
	return r.SelectAll(ctx, r.SelectQuery().
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("created_at ASC", "id ASC"))
}

func (r *StockRepo) GetByProductAndLocation(ctx context.Context, productID id.ID, locationID string) (*stock.Stock, error) {
	q := r.SelectQuery().
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.Eq{"location_id": locationID})
	return r.GetOne(ctx, q, productID.String()+"@"+locationID)
}

func (r *StockRepo) Update(ctx context.Context, s *stock.Stock, columns []string) error {
	return r.UpdateColumns(ctx, s.ID, s, columns)
}

// AdjustQuantity applies delta atomically and returns the updated row.
func (r *StockRepo) AdjustQuantity(ctx context.Context, stockID id.ID, delta int64) (*stock.Stock, error) {
	st, err := r.GetReturning(ctx, r.adjustQuery(stockID, delta, time.Now().UTC()), stockID.String())
	if err != nil {
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	return st, nil
}

func (r *StockRepo) adjustQuery(stockID id.ID, delta int64, now time.Time) squirrel.UpdateBuilder {
	return r.Builder().
		Update(r.TableName()).
		Set("quantity", squirrel.Expr("quantity + ?", delta)).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": stockID}).
		Suffix("RETURNING " + strings.Join(r.Columns(), ", "))
}
