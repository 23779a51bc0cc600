package category

import (
	"context"
	"fmt"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/pkg/logger"
)

// Service provides category business logic.
type Service struct {
	repo Repository
}

// NewService creates a new category service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new category.
func (s *Service) Create(ctx context.Context, name, description string) (*Category, error) {
	c, err := NewCategory(ctx, name, description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	logger.Info(ctx, "category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// GetByID retrieves a category.
func (s *Service) GetByID(ctx context.Context, categoryID id.ID) (*Category, error) {
	return s.repo.GetByID(ctx, categoryID)
}

// List returns categories matching filter.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Category], error) {
	return s.repo.List(ctx, filter)
}

// Update applies patch to an existing category.
func (s *Service) Update(ctx context.Context, categoryID id.ID, patch Patch) (*Category, error) {
	c, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	columns := patch.Apply(c)
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c, columns); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete removes a category by id.
func (s *Service) Delete(ctx context.Context, categoryID id.ID) error {
	deleted, err := s.repo.Delete(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("category", categoryID.String())
	}
	logger.Info(ctx, "category deleted", "category_id", categoryID)
	return nil
}
