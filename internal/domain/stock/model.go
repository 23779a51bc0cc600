// Package stock tracks product quantities per location.
package stock

import (
	"context"
	"strings"
	"time"

	"inventory/internal/core/apperror"
	"inventory/internal/core/entity"
	"inventory/internal/core/id"
)

// Stock is the quantity of one product at one location.
// (ProductID, LocationID) is unique; Quantity is never negative once stored.
type Stock struct {
	entity.BaseEntity
	ProductID   id.ID      `db:"product_id" json:"productId"`
	LocationID  string     `db:"location_id" json:"locationId"`
	Quantity    int64      `db:"quantity" json:"quantity"`
	BatchNumber string     `db:"batch_number" json:"batchNumber"`
	ExpiryDate  *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`
}

// CreateInput holds the fields accepted when creating a stock record.
type CreateInput struct {
	ProductID   id.ID
	LocationID  string
	Quantity    int64
	BatchNumber string
	ExpiryDate  *time.Time
}

// NewStock creates a validated stock record.
func NewStock(ctx context.Context, in CreateInput) (*Stock, error) {
	s := &Stock{
		BaseEntity:  entity.NewBaseEntity(),
		ProductID:   in.ProductID,
		LocationID:  strings.TrimSpace(in.LocationID),
		Quantity:    in.Quantity,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  in.ExpiryDate,
	}
	if err := s.Validate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate implements entity.Validatable.
func (s *Stock) Validate(ctx context.Context) error {
	switch {
	case id.IsNil(s.ProductID):
		return apperror.NewValidation("productId is required").WithDetail("field", "productId")
	case s.LocationID == "":
		return apperror.NewValidation("locationId is required").WithDetail("field", "locationId")
	case s.Quantity < 0:
		return apperror.NewValidation("quantity must not be negative").WithDetail("field", "quantity")
	}
	return nil
}

// IsOutOfStock reports whether nothing is left.
func (s *Stock) IsOutOfStock() bool {
	return s.Quantity <= 0
}

// IsLowStock reports whether quantity is below threshold.
func (s *Stock) IsLowStock(threshold int64) bool {
	return s.Quantity < threshold
}

// Patch lists the fields a stock update may change.
// Product and location are fixed after creation.
type Patch struct {
	Quantity    *int64
	BatchNumber *string
	ExpiryDate  *time.Time
}

// Apply copies the set fields onto s and returns the columns it changed.
func (p Patch) Apply(s *Stock) []string {
	var columns []string
	if p.Quantity != nil {
		s.Quantity = *p.Quantity
		columns = append(columns, "quantity")
	}
	if p.BatchNumber != nil {
		s.BatchNumber = *p.BatchNumber
		columns = append(columns, "batch_number")
	}
	if p.ExpiryDate != nil {
		s.ExpiryDate = p.ExpiryDate
		columns = append(columns, "expiry_date")
	}
	s.Touch()
	return append(columns, "updated_at")
}
