package invoice

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/core/numerator"
	"inventory/internal/core/types"
	"inventory/internal/domain"
	"inventory/internal/domain/audit"
	"inventory/pkg/logger"
)

var tracer = otel.Tracer("inventory/invoice")

// maxNumberAttempts bounds invoice number regeneration after a unique violation.
const maxNumberAttempts = 5

// Service provides invoice business logic.
type Service struct {
	repo      Repository
	customers CustomerFinder
	stock     StockLedger
	numerator numerator.Generator
	audit     audit.Recorder
	renderer  Renderer
	mailer    Mailer
	now       func() time.Time
}

// Deps groups the collaborators of Service.
type Deps struct {
	Repo      Repository
	Customers CustomerFinder
	Stock     StockLedger
	Numerator numerator.Generator
	Audit     audit.Recorder
	Renderer  Renderer
	Mailer    Mailer
}

// NewService creates a new invoice service.
func NewService(d Deps) *Service {
	rec := d.Audit
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{
		repo:      d.Repo,
		customers: d.Customers,
		stock:     d.Stock,
		numerator: d.Numerator,
		audit:     rec,
		renderer:  d.Renderer,
		mailer:    d.Mailer,
		now:       time.Now,
	}
}

// Create bills a customer and deducts the sold quantities from stock.
//
// Items are processed in order. For each item the product's stock records
// are read and decremented in lookup order, each decrement committed on its
// own. A failure on a later item does not restore stock already deducted for
// earlier items.
func (s *Service) Create(ctx context.Context, in CreateInput) (inv *Invoice, err error) {
	ctx, span := tracer.Start(ctx, "invoice.create")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := validateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, in.CustomerID); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewBadRequest("Customer not found").WithDetail("customerId", in.CustomerID.String())
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}

	subtotal := types.Zero()
	items := make(Items, 0, len(in.Items))
	for _, item := range in.Items {
		total := LineTotal(item.Price, item.Discount, item.Quantity)
		subtotal = subtotal.Add(total)
		items = append(items, Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Discount:  item.Discount,
			Total:     total,
		})

		if err := s.deduct(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()
	inv = &Invoice{
		CustomerID:    in.CustomerID,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           in.Tax,
		Discount:      in.Discount,
		Total:         subtotal.Add(in.Tax).Sub(in.Discount),
		Status:        StatusPending,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}
	inv.ID = id.New()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	if err := s.insertNumbered(ctx, inv, now); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("invoice.number", inv.InvoiceNumber),
		attribute.Int("invoice.items", len(inv.Items)),
	)
	logger.Info(ctx, "invoice created",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"customer_id", inv.CustomerID,
		"total", inv.Total.String())
	audit.Record(ctx, s.audit, audit.EntityInvoice, inv.ID, audit.ActionCreate, map[string]any{
		"invoiceNumber": inv.InvoiceNumber,
		"total":         inv.Total.String(),
		"items":         len(inv.Items),
	})
	return inv, nil
}

// deduct removes quantity of productID from its stock records in lookup order.
func (s *Service) deduct(ctx context.Context, productID id.ID, quantity int64) error {
	records, err := s.stock.ListByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("list stock for product %s: %w", productID, err)
	}
	if len(records) == 0 {
		return apperror.NewBadRequest(fmt.Sprintf("No stock found for product %s", productID)).
			WithDetail("productId", productID.String())
	}

	var available int64
	for _, rec := range records {
		available += rec.Quantity
	}
	if available < quantity {
		return apperror.NewInsufficientStock(productID.String(), quantity, available)
	}

	remaining := quantity
	for _, rec := range records {
		if remaining == 0 {
			break
		}
		take := min(remaining, rec.Quantity)
		if take <= 0 {
			continue
		}
		if _, err := s.stock.AdjustQuantity(ctx, rec.ID, -take); err != nil {
			return fmt.Errorf("deduct stock %s: %w", rec.ID, err)
		}
		remaining -= take
	}
	return nil
}

// insertNumbered assigns the next daily number and inserts inv,
// regenerating the number when it collides with an existing one.
func (s *Service) insertNumbered(ctx context.Context, inv *Invoice, day time.Time) error {
	cfg := numerator.InvoiceConfig()
	var lastErr error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		number, err := s.numerator.GetNextNumber(ctx, cfg, day)
		if err != nil {
			return fmt.Errorf("generate invoice number: %w", err)
		}
		inv.InvoiceNumber = number

		err = s.repo.Create(ctx, inv)
		if err == nil {
			return nil
		}
		if !apperror.IsConflict(err) {
			return fmt.Errorf("create invoice: %w", err)
		}
		logger.Warn(ctx, "invoice number taken, retrying", "invoice_number", number, "attempt", attempt)
		lastErr = err
	}
	return fmt.Errorf("create invoice after %d attempts: %w", maxNumberAttempts, lastErr)
}

func validateInput(in CreateInput) error {
	if id.IsNil(in.CustomerID) {
		return apperror.NewValidation("customerId is required").WithDetail("field", "customerId")
	}
	if len(in.Items) == 0 {
		return apperror.NewValidation("at least one item is required").WithDetail("field", "items")
	}
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		switch {
		case id.IsNil(item.ProductID):
			return apperror.NewValidation("productId is required").WithDetail("field", field+".productId")
		case item.Quantity <= 0:
			return apperror.NewValidation("quantity must be positive").WithDetail("field", field+".quantity")
		case item.Price.IsNegative():
			return apperror.NewValidation("price must not be negative").WithDetail("field", field+".price")
		case item.Discount.IsNegative():
			return apperror.NewValidation("discount must not be negative").WithDetail("field", field+".discount")
		}
	}
	if in.Tax.IsNegative() || in.Discount.IsNegative() {
		return apperror.NewValidation("tax and discount must not be negative")
	}
	return nil
}

// GetByID retrieves an invoice.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return s.repo.GetByID(ctx, invoiceID)
}

// List returns invoices matching filter.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	return s.repo.List(ctx, filter)
}

// ListByCustomer returns a customer's invoices.
func (s *Service) ListByCustomer(ctx context.Context, customerID id.ID) ([]*Invoice, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// ListRecent returns the newest invoices.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Invoice, error) {
	if limit <= 0 {
		return nil, apperror.NewValidation("limit must be positive").WithDetail("limit", limit)
	}
	return s.repo.ListRecent(ctx, limit)
}

// Update applies patch. Items and totals cannot change.
func (s *Service) Update(ctx context.Context, invoiceID id.ID, patch Patch) (*Invoice, error) {
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, invalidStatus(*patch.Status)
	}
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	before := inv.Status
	columns := patch.Apply(inv)
	if err := s.repo.Update(ctx, inv, columns); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	if patch.Status != nil && before != inv.Status {
		s.recordStatus(ctx, inv.ID, before, inv.Status)
	}
	return inv, nil
}

// UpdateStatus moves an invoice to status.
func (s *Service) UpdateStatus(ctx context.Context, invoiceID id.ID, status Status) (*Invoice, error) {
	if !status.IsValid() {
		return nil, invalidStatus(status)
	}
	inv, err := s.repo.UpdateStatus(ctx, invoiceID, status)
	if err != nil {
		return nil, fmt.Errorf("update invoice status: %w", err)
	}
	logger.Info(ctx, "invoice status changed", "invoice_id", invoiceID, "status", status)
	s.recordStatus(ctx, invoiceID, "", status)
	return inv, nil
}

// Delete removes an invoice. Stock is not restored.
func (s *Service) Delete(ctx context.Context, invoiceID id.ID) error {
	deleted, err := s.repo.Delete(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	audit.Record(ctx, s.audit, audit.EntityInvoice, invoiceID, audit.ActionDelete, nil)
	return nil
}

// Send renders the invoice and e-mails it to the customer.
// A delivery failure is reported in the result, not as an error.
func (s *Service) Send(ctx context.Context, invoiceID id.ID) (SendResult, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		return SendResult{}, err
	}

	customer, err := s.customers.GetByID(ctx, inv.CustomerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return SendResult{}, apperror.NewBadRequest("Customer not found")
		}
		return SendResult{}, fmt.Errorf("find customer: %w", err)
	}

	pdf, err := s.renderer.Render(ctx, inv)
	if err != nil {
		return SendResult{}, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}

	if err := s.mailer.SendInvoice(ctx, customer.Email, customer.FullName(), inv.InvoiceNumber, pdf); err != nil {
		logger.Error(ctx, "invoice email failed", "invoice_id", inv.ID, "error", err)
		return SendResult{Success: false, Message: "Failed to send invoice"}, nil
	}
	logger.Info(ctx, "invoice sent", "invoice_id", inv.ID, "to", customer.Email)
	return SendResult{Success: true, Message: "Invoice sent successfully"}, nil
}

func (s *Service) recordStatus(ctx context.Context, invoiceID id.ID, from, to Status) {
	changes := map[string]any{"status": map[string]any{"new": to}}
	if from != "" {
		changes["status"] = map[string]any{"old": from, "new": to}
	}
	audit.Record(ctx, s.audit, audit.EntityInvoice, invoiceID, audit.ActionStatusChange, changes)
}

func invalidStatus(status Status) error {
	return apperror.NewBadRequest(fmt.Sprintf("Invalid status: %s", status)).WithDetail("status", string(status))
}
