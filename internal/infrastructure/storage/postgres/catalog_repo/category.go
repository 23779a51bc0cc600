// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

import (
	"context"

	"inventory/internal/domain"
	"inventory/internal/domain/category"
	"inventory/internal/infrastructure/storage/postgres"
)

const categoryTable = "categories"

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*postgres.BaseRepo[category.Category]
}

var _ category.Repository = (*CategoryRepo)(nil)

// NewCategoryRepo creates a new category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseRepo: postgres.NewBaseRepo[category.Category](txm, categoryTable, "category", "name", "description"),
	}
}

func (r *CategoryRepo) Create(ctx context.Context, c *category.Category) error {
	return r.Insert(ctx, c)
}

func (r *CategoryRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*category.Category], error) {
	return r.BaseRepo.List(ctx, r.SelectQuery(), filter)
}

func (r *CategoryRepo) Update(ctx context.Context, c *category.Category, columns []string) error {
	return r.UpdateColumns(ctx, c.ID, c, columns)
}
