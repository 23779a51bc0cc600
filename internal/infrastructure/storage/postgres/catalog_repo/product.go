package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/internal/domain/product"
	"inventory/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*postgres.BaseRepo[product.Product]
}

var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseRepo: postgres.NewBaseRepo[product.Product](txm, productTable, "product", "name", "sku", "barcode"),
	}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	return r.Insert(ctx, p)
}

// GetByIDs loads the products that still exist among ids.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}
	return r.SelectAll(ctx, r.byIDsQuery(ids))
}

func (r *ProductRepo) byIDsQuery(ids []id.ID) squirrel.SelectBuilder {
	return r.SelectQuery().Where(squirrel.Eq{"id": ids})
}

func (r *ProductRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return r.BaseRepo.List(ctx, r.SelectQuery(), filter)
}

// ListAll returns every product ordered by name, for export.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*product.Product, error) {
	return r.SelectAll(ctx, r.SelectQuery().OrderBy("name ASC", "id ASC"))
}

func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*product.Product, error) {
	return r.SelectAll(ctx, r.byCategoryQuery(categoryID))
}

func (r *ProductRepo) byCategoryQuery(categoryID id.ID) squirrel.SelectBuilder {
	return r.SelectQuery().
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("name ASC")
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product, columns []string) error {
	return r.UpdateColumns(ctx, p.ID, p, columns)
}
