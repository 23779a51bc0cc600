package dto

import (
	"inventory/internal/core/id"
	"inventory/internal/core/types"
	"inventory/internal/domain/invoice"
)

// InvoiceItemRequest is one requested invoice line.
type InvoiceItemRequest struct {
	ProductID id.ID       `json:"productId"`
	Quantity  int64       `json:"quantity" binding:"min=1"`
	Price     types.Money `json:"price"`
	Discount  types.Money `json:"discount"`
}

// CreateInvoiceRequest for creating invoices.
type CreateInvoiceRequest struct {
	CustomerID    id.ID                `json:"customerId"`
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Tax           types.Money          `json:"tax"`
	Discount      types.Money          `json:"discount"`
	Notes         string               `json:"notes"`
	PaymentMethod string               `json:"paymentMethod"`
}

// ToInput converts to domain input.
func (r *CreateInvoiceRequest) ToInput() invoice.CreateInput {
	items := make([]invoice.ItemInput, len(r.Items))
	for i, it := range r.Items {
		items[i] = invoice.ItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Discount:  it.Discount,
		}
	}
	return invoice.CreateInput{
		CustomerID:    r.CustomerID,
		Items:         items,
		Tax:           r.Tax,
		Discount:      r.Discount,
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
	}
}

// UpdateInvoiceRequest for updating invoices. Items and totals are fixed.
type UpdateInvoiceRequest struct {
	Status        *invoice.Status `json:"status" binding:"omitempty,oneof=draft pending paid cancelled refunded"`
	PaymentMethod *string         `json:"paymentMethod"`
	Notes         *string         `json:"notes"`
}

// ToPatch converts to domain patch.
func (r *UpdateInvoiceRequest) ToPatch() invoice.Patch {
	return invoice.Patch{
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
}
