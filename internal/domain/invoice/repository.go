package invoice

import (
	"context"

	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/internal/domain/auth"
	"inventory/internal/domain/stock"
)

// Repository defines persistence operations for invoices.
type Repository interface {
	// Create inserts inv. A duplicate invoice number yields a Conflict error.
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id id.ID) (*Invoice, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error)
	ListByCustomer(ctx context.Context, customerID id.ID) ([]*Invoice, error)
	// ListRecent returns the newest invoices by creation time.
	ListRecent(ctx context.Context, limit int) ([]*Invoice, error)
	Update(ctx context.Context, inv *Invoice, columns []string) error
	UpdateStatus(ctx context.Context, id id.ID, status Status) (*Invoice, error)
	Delete(ctx context.Context, id id.ID) (bool, error)
}

// CustomerFinder resolves invoice customers.
type CustomerFinder interface {
	GetByID(ctx context.Context, userID id.ID) (*auth.User, error)
}

// StockLedger reads and decrements stock records.
type StockLedger interface {
	ListByProduct(ctx context.Context, productID id.ID) ([]*stock.Stock, error)
	AdjustQuantity(ctx context.Context, stockID id.ID, delta int64) (*stock.Stock, error)
}

// Renderer produces the printable invoice document.
type Renderer interface {
	Render(ctx context.Context, inv *Invoice) ([]byte, error)
}

// Mailer delivers the invoice document to the customer.
type Mailer interface {
	SendInvoice(ctx context.Context, email, name, invoiceNumber string, pdf []byte) error
}
