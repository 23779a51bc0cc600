package discount

import (
	"context"
	"fmt"
	"time"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/pkg/logger"
)

// Validation messages returned by ValidateCode.
const (
	MsgCodeNotFound = "Discount code not found"
	MsgInactive     = "Discount is inactive"
	MsgOutOfWindow  = "Discount is not valid at this time"
	MsgValid        = "Discount is valid"
)

// Validation is the outcome of checking a discount code.
type Validation struct {
	Valid    bool      `json:"valid"`
	Discount *Discount `json:"discount,omitempty"`
	Message  string    `json:"message"`
}

// Service provides discount business logic.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new discount service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates and stores a new discount.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Discount, error) {
	d, err := NewDiscount(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create discount: %w", err)
	}
	logger.Info(ctx, "discount created", "discount_id", d.ID, "type", d.Type)
	return d, nil
}

// GetByID retrieves a discount.
func (s *Service) GetByID(ctx context.Context, discountID id.ID) (*Discount, error) {
	return s.repo.GetByID(ctx, discountID)
}

// GetByCode retrieves a discount by its redemption code.
func (s *Service) GetByCode(ctx context.Context, code string) (*Discount, error) {
	return s.repo.GetByCode(ctx, code)
}

// List returns discounts matching filter.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Discount], error) {
	return s.repo.List(ctx, filter)
}

// Update applies patch to an existing discount.
func (s *Service) Update(ctx context.Context, discountID id.ID, patch Patch) (*Discount, error) {
	d, err := s.repo.GetByID(ctx, discountID)
	if err != nil {
		return nil, err
	}
	columns := patch.Apply(d)
	if err := d.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, d, columns); err != nil {
		return nil, fmt.Errorf("update discount: %w", err)
	}
	return d, nil
}

// Delete removes a discount by id.
func (s *Service) Delete(ctx context.Context, discountID id.ID) error {
	deleted, err := s.repo.Delete(ctx, discountID)
	if err != nil {
		return fmt.Errorf("delete discount: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("discount", discountID.String())
	}
	return nil
}

// ValidateCode reports whether code names a discount usable now.
// An unknown code is a negative result, not an error.
func (s *Service) ValidateCode(ctx context.Context, code string) (Validation, error) {
	d, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Validation{Message: MsgCodeNotFound}, nil
		}
		return Validation{}, fmt.Errorf("validate discount code: %w", err)
	}
	if !d.IsActive {
		return Validation{Message: MsgInactive}, nil
	}
	if !d.IsValid(s.now()) {
		return Validation{Message: MsgOutOfWindow}, nil
	}
	return Validation{Valid: true, Discount: d, Message: MsgValid}, nil
}
