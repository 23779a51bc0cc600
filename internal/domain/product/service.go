package product

import (
	"context"
	"fmt"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/pkg/logger"
)

// Service provides product business logic.
type Service struct {
	repo Repository
}

// NewService creates a new product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	p, err := NewProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	logger.Info(ctx, "product created", "product_id", p.ID, "sku", p.SKU)
	return p, nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List returns products matching filter.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.List(ctx, filter)
}

// ListAll returns every product, used by export.
func (s *Service) ListAll(ctx context.Context) ([]*Product, error) {
	return s.repo.ListAll(ctx)
}

// ListByCategory returns products of one category.
func (s *Service) ListByCategory(ctx context.Context, categoryID id.ID) ([]*Product, error) {
	return s.repo.ListByCategory(ctx, categoryID)
}

// Update applies patch to an existing product.
func (s *Service) Update(ctx context.Context, productID id.ID, patch Patch) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	columns := patch.Apply(p)
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p, columns); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes a product by id.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	deleted, err := s.repo.Delete(ctx, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("product", productID.String())
	}
	logger.Info(ctx, "product deleted", "product_id", productID)
	return nil
}
