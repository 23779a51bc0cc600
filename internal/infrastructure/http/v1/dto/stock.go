package dto

import (
	"time"

	"inventory/internal/core/id"
	"inventory/internal/domain/stock"
)

// --- Request DTOs ---

// CreateStockRequest for creating stock records.
type CreateStockRequest struct {
	ProductID   id.ID      `json:"productId"`
	LocationID  string     `json:"locationId" binding:"required"`
	Quantity    int64      `json:"quantity" binding:"min=0"`
	BatchNumber string     `json:"batchNumber"`
	ExpiryDate  *time.Time `json:"expiryDate"`
}

// ToInput converts to domain input.
func (r *CreateStockRequest) ToInput() stock.CreateInput {
	return stock.CreateInput{
		ProductID:   r.ProductID,
		LocationID:  r.LocationID,
		Quantity:    r.Quantity,
		BatchNumber: r.BatchNumber,
		ExpiryDate:  r.ExpiryDate,
	}
}

// UpdateStockRequest for updating stock records.
// Product and location cannot be changed.
type UpdateStockRequest struct {
	Quantity    *int64     `json:"quantity" binding:"omitempty,min=0"`
	BatchNumber *string    `json:"batchNumber"`
	ExpiryDate  *time.Time `json:"expiryDate"`
}

// ToPatch converts to domain patch.
func (r *UpdateStockRequest) ToPatch() stock.Patch {
	return stock.Patch{
		Quantity:    r.Quantity,
		BatchNumber: r.BatchNumber,
		ExpiryDate:  r.ExpiryDate,
	}
}

// --- Response DTOs ---

// StockResponse adds availability flags to a stock record.
type StockResponse struct {
	*stock.Stock
	OutOfStock bool `json:"outOfStock"`
}

// FromStock converts entity to response DTO.
func FromStock(s *stock.Stock) StockResponse {
	return StockResponse{Stock: s, OutOfStock: s.IsOutOfStock()}
}

// FromStocks maps a slice of stock records.
func FromStocks(ss []*stock.Stock) []StockResponse {
	out := make([]StockResponse, len(ss))
	for i, s := range ss {
		out[i] = FromStock(s)
	}
	return out
}
