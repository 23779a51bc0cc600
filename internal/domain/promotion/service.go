package promotion

import (
	"context"
	"fmt"
	"time"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/pkg/logger"
)

// Service provides promotion business logic.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new promotion service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates and stores a new promotion.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Promotion, error) {
	p, err := NewPromotion(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create promotion: %w", err)
	}
	logger.Info(ctx, "promotion created", "promotion_id", p.ID)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, promotionID id.ID) (*Promotion, error) {
	return s.repo.GetByID(ctx, promotionID)
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Promotion], error) {
	return s.repo.List(ctx, filter)
}

// ListActive returns the promotions running now.
func (s *Service) ListActive(ctx context.Context) ([]*Promotion, error) {
	return s.repo.ListActive(ctx, s.now().UTC())
}

// Update applies patch to an existing promotion.
func (s *Service) Update(ctx context.Context, promotionID id.ID, patch Patch) (*Promotion, error) {
	p, err := s.repo.GetByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	columns := patch.Apply(p)
	if err := p.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p, columns); err != nil {
		return nil, fmt.Errorf("update promotion: %w", err)
	}
	return p, nil
}

// Delete removes a promotion by id.
func (s *Service) Delete(ctx context.Context, promotionID id.ID) error {
	deleted, err := s.repo.Delete(ctx, promotionID)
	if err != nil {
		return fmt.Errorf("delete promotion: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("promotion", promotionID.String())
	}
	return nil
}
