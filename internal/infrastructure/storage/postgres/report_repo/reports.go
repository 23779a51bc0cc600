// Package report_repo provides the read side used by reports.
package report_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"inventory/internal/core/id"
	"inventory/internal/domain/invoice"
	"inventory/internal/domain/product"
	"inventory/internal/domain/reports"
	"inventory/internal/domain/stock"
	"inventory/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository. Aggregation happens in the
// reports service; this repository only selects the source rows.
type ReportRepo struct {
	invoices *postgres.BaseRepo[invoice.Invoice]
	products *postgres.BaseRepo[product.Product]
	stocks   *postgres.BaseRepo[stock.Stock]
}

var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		invoices: postgres.NewBaseRepo[invoice.Invoice](txm, "invoices", "invoice"),
		products: postgres.NewBaseRepo[product.Product](txm, "products", "product"),
		stocks:   postgres.NewBaseRepo[stock.Stock](txm, "stocks", "stock"),
	}
}

// InvoicesByStatus returns invoices in status created within r, both ends inclusive.
func (r *ReportRepo) InvoicesByStatus(ctx context.Context, status invoice.Status, rng reports.Range) ([]*invoice.Invoice, error) {
	return r.invoices.SelectAll(ctx, r.invoicesQuery(status, rng))
}

func (r *ReportRepo) invoicesQuery(status invoice.Status, rng reports.Range) squirrel.SelectBuilder {
	return r.invoices.SelectQuery().
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.GtOrEq{"created_at": rng.Start}).
		Where(squirrel.LtOrEq{"created_at": rng.End}).
		OrderBy("created_at ASC")
}

func (r *ReportRepo) ProductsByIDs(ctx context.Context, ids []id.ID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}
	return r.products.SelectAll(ctx, r.products.SelectQuery().Where(squirrel.Eq{"id": ids}))
}

func (r *ReportRepo) AllStocks(ctx context.Context) ([]*stock.Stock, error) {
	return r.stocks.SelectAll(ctx, r.stocks.SelectQuery().OrderBy("created_at ASC", "id ASC"))
}
