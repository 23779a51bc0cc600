// Package invoice implements invoicing: creation with stock deduction,
// status transitions and delivery to the customer.
package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"inventory/internal/core/entity"
	"inventory/internal/core/id"
	"inventory/internal/core/types"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Item is one invoice line.
type Item struct {
	ProductID id.ID       `json:"productId"`
	Quantity  int64       `json:"quantity"`
	Price     types.Money `json:"price"`
	Discount  types.Money `json:"discount"`
	Total     types.Money `json:"total"`
}

// LineTotal returns (price - discount) * quantity.
func LineTotal(price, discount types.Money, quantity int64) types.Money {
	return price.Sub(discount).Mul(decimal.NewFromInt(quantity))
}

// Items is stored as a single JSONB column.
type Items []Item

// Value implements driver.Valuer.
func (it Items) Value() (driver.Value, error) {
	if it == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Item(it))
	if err != nil {
		return nil, fmt.Errorf("marshal invoice items: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (it *Items) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*it = Items{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan invoice items: unsupported type %T", src)
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("unmarshal invoice items: %w", err)
	}
	*it = items
	return nil
}

// Invoice is a customer bill. Totals are computed once at creation:
// Subtotal = sum of item totals, Total = Subtotal + Tax - Discount.
type Invoice struct {
	entity.BaseEntity
	InvoiceNumber string      `db:"invoice_number" json:"invoiceNumber"`
	CustomerID    id.ID       `db:"customer_id" json:"customerId"`
	Items         Items       `db:"items" json:"items"`
	Subtotal      types.Money `db:"subtotal" json:"subtotal"`
	Tax           types.Money `db:"tax" json:"tax"`
	Discount      types.Money `db:"discount" json:"discount"`
	Total         types.Money `db:"total" json:"total"`
	Status        Status      `db:"status" json:"status"`
	PaymentMethod string      `db:"payment_method" json:"paymentMethod"`
	Notes         string      `db:"notes" json:"notes"`
}

// ItemInput is one requested invoice line.
type ItemInput struct {
	ProductID id.ID
	Quantity  int64
	Price     types.Money
	Discount  types.Money
}

// CreateInput holds the fields accepted when creating an invoice.
type CreateInput struct {
	CustomerID    id.ID
	Items         []ItemInput
	Tax           types.Money
	Discount      types.Money
	Notes         string
	PaymentMethod string
}

// Patch lists the fields an invoice update may change. Items and totals are fixed.
type Patch struct {
	Status        *Status
	PaymentMethod *string
	Notes         *string
}

// Apply copies the set fields onto inv and returns the columns it changed.
func (p Patch) Apply(inv *Invoice) []string {
	var columns []string
	if p.Status != nil {
		inv.Status = *p.Status
		columns = append(columns, "status")
	}
	if p.PaymentMethod != nil {
		inv.PaymentMethod = *p.PaymentMethod
		columns = append(columns, "payment_method")
	}
	if p.Notes != nil {
		inv.Notes = *p.Notes
		columns = append(columns, "notes")
	}
	inv.Touch()
	return append(columns, "updated_at")
}

// SendResult reports whether the invoice e-mail was delivered.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PDFFilename returns the attachment name for inv.
func PDFFilename(invoiceNumber string) string {
	return "invoice-" + invoiceNumber + ".pdf"
}
