package stock

import (
	"context"
	"fmt"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/internal/domain/audit"
	"inventory/pkg/logger"
)

// Service provides stock business logic.
type Service struct {
	repo  Repository
	audit audit.Recorder
}

// NewService creates a new stock service.
func NewService(repo Repository, rec audit.Recorder) *Service {
	return &Service{repo: repo, audit: rec}
}

// Create validates and stores a new stock record.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Stock, error) {
	st, err := NewStock(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create stock: %w", err)
	}
	logger.Info(ctx, "stock created",
		"stock_id", st.ID, "product_id", st.ProductID, "location_id", st.LocationID, "quantity", st.Quantity)
	return st, nil
}

// GetByID retrieves a stock record.
func (s *Service) GetByID(ctx context.Context, stockID id.ID) (*Stock, error) {
	return s.repo.GetByID(ctx, stockID)
}

// List returns stock records matching filter.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Stock], error) {
	return s.repo.List(ctx, filter)
}

// ListAll returns every stock record, used by export.
func (s *Service) ListAll(ctx context.Context) ([]*Stock, error) {
	return s.repo.ListAll(ctx)
}

// ListByProduct returns the product's records across locations.
func (s *Service) ListByProduct(ctx context.Context, productID id.ID) ([]*Stock, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// ListByLocation returns the records held at one location.
func (s *Service) ListByLocation(ctx context.Context, locationID string) ([]*Stock, error) {
	return s.repo.ListByLocation(ctx, locationID)
}

// Update applies patch to an existing record.
func (s *Service) Update(ctx context.Context, stockID id.ID, patch Patch) (*Stock, error) {
	st, err := s.repo.GetByID(ctx, stockID)
	if err != nil {
		return nil, err
	}
	before := st.Quantity
	columns := patch.Apply(st)
	if err := st.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, st, columns); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	if patch.Quantity != nil && before != st.Quantity {
		audit.Record(ctx, s.audit, audit.EntityStock, st.ID, audit.ActionUpdate,
			map[string]any{"quantity": map[string]any{"old": before, "new": st.Quantity}})
	}
	return st, nil
}

// AdjustQuantity adds delta (possibly negative) to the record's quantity.
func (s *Service) AdjustQuantity(ctx context.Context, stockID id.ID, delta int64) (*Stock, error) {
	st, err := s.repo.AdjustQuantity(ctx, stockID, delta)
	if err != nil {
		return nil, fmt.Errorf("adjust stock %s: %w", stockID, err)
	}
	logger.Info(ctx, "stock adjusted", "stock_id", stockID, "delta", delta, "quantity", st.Quantity)
	audit.Record(ctx, s.audit, audit.EntityStock, stockID, audit.ActionAdjust,
		map[string]any{"delta": delta, "quantity": st.Quantity})
	return st, nil
}

// Delete removes a stock record by id.
func (s *Service) Delete(ctx context.Context, stockID id.ID) error {
	deleted, err := s.repo.Delete(ctx, stockID)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("stock", stockID.String())
	}
	audit.Record(ctx, s.audit, audit.EntityStock, stockID, audit.ActionDelete, nil)
	return nil
}
