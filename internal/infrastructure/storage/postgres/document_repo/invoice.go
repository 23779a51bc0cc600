// Package document_repo provides PostgreSQL implementations for document repositories.
package document_repo

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/internal/domain/invoice"
	"inventory/internal/infrastructure/storage/postgres"
)

const invoiceTable = "invoices"

// InvoiceRepo implements invoice.Repository. Line items live in a JSONB column.
type InvoiceRepo struct {
	*postgres.BaseRepo[invoice.Invoice]
}

var _ invoice.Repository = (*InvoiceRepo)(nil)

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{
		BaseRepo: postgres.NewBaseRepo[invoice.Invoice](txm, invoiceTable, "invoice", "invoice_number", "notes"),
	}
}

// Create inserts inv; a taken invoice number surfaces as Conflict via MapError.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	return r.Insert(ctx, inv)
}

func (r *InvoiceRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*invoice.Invoice], error) {
	return r.BaseRepo.List(ctx, r.SelectQuery(), filter)
}

func (r *InvoiceRepo) ListByCustomer(ctx context.Context, customerID id.ID) ([]*invoice.Invoice, error) {
	return r.SelectAll(ctx, r.SelectQuery().
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC"))
}

func (r *InvoiceRepo) ListRecent(ctx context.Context, limit int) ([]*invoice.Invoice, error) {
	return r.SelectAll(ctx, r.recentQuery(limit))
}

func (r *InvoiceRepo) recentQuery(limit int) squirrel.SelectBuilder {
	return r.SelectQuery().
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
}

func (r *InvoiceRepo) Update(ctx context.Context, inv *invoice.Invoice, columns []string) error {
	return r.UpdateColumns(ctx, inv.ID, inv, columns)
}

// UpdateStatus sets only the status and returns the stored invoice.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, invoiceID id.ID, status invoice.Status) (*invoice.Invoice, error) {
	return r.GetReturning(ctx, r.statusQuery(invoiceID, status, time.Now().UTC()), invoiceID.String())
}

func (r *InvoiceRepo) statusQuery(invoiceID id.ID, status invoice.Status, now time.Time) squirrel.UpdateBuilder {
	return r.Builder().
		Update(r.TableName()).
		Set("status", status).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": invoiceID}).
		Suffix("RETURNING " + strings.Join(r.Columns(), ", "))
}
