package invoice

import (
	"context"
	"errors"
	"sort"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/internal/domain/auth"
	"inventory/internal/domain/stock"
)

type memInvoices struct {
	items      map[id.ID]*Invoice
	numbers    map[string]bool
	createErrs []error
}

func newMemInvoices() *memInvoices {
	return &memInvoices{items: make(map[id.ID]*Invoice), numbers: make(map[string]bool)}
}

func (m *memInvoices) Create(_ context.Context, inv *Invoice) error {
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if m.numbers[inv.InvoiceNumber] {
		return apperror.NewConflict("invoice already exists")
	}
	m.numbers[inv.InvoiceNumber] = true
	m.items[inv.ID] = inv
	return nil
}

func (m *memInvoices) GetByID(_ context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, ok := m.items[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	return inv, nil
}

func (m *memInvoices) all() []*Invoice {
	out := make([]*Invoice, 0, len(m.items))
	for _, inv := range m.items {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memInvoices) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	res := domain.EmptyResult[*Invoice](filter)
	res.Items = m.all()
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (m *memInvoices) ListByCustomer(_ context.Context, customerID id.ID) ([]*Invoice, error) {
	var out []*Invoice
	for _, inv := range m.all() {
		if inv.CustomerID == customerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memInvoices) ListRecent(_ context.Context, limit int) ([]*Invoice, error) {
	all := m.all()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memInvoices) Update(_ context.Context, inv *Invoice, _ []string) error {
	m.items[inv.ID] = inv
	return nil
}

func (m *memInvoices) UpdateStatus(_ context.Context, invoiceID id.ID, status Status) (*Invoice, error) {
	inv, ok := m.items[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	inv.Status = status
	return inv, nil
}

func (m *memInvoices) Delete(_ context.Context, invoiceID id.ID) (bool, error) {
	_, ok := m.items[invoiceID]
	delete(m.items, invoiceID)
	return ok, nil
}

type memCustomers map[id.ID]*auth.User

func (m memCustomers) GetByID(_ context.Context, userID id.ID) (*auth.User, error) {
	u, ok := m[userID]
	if !ok {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	return u, nil
}

// memLedger keeps stock records in insertion order, which is the lookup order.
type memLedger struct {
	records []*stock.Stock
	adjusts []adjustCall
}

type adjustCall struct {
	stockID id.ID
	delta   int64
}

func (l *memLedger) add(productID id.ID, location string, qty int64) *stock.Stock {
	st := &stock.Stock{ProductID: productID, LocationID: location, Quantity: qty}
	st.ID = id.New()
	l.records = append(l.records, st)
	return st
}

func (l *memLedger) ListByProduct(_ context.Context, productID id.ID) ([]*stock.Stock, error) {
	var out []*stock.Stock
	for _, st := range l.records {
		if st.ProductID == productID {
			copied := *st
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (l *memLedger) AdjustQuantity(_ context.Context, stockID id.ID, delta int64) (*stock.Stock, error) {
	for _, st := range l.records {
		if st.ID == stockID {
			if st.Quantity+delta < 0 {
				return nil, errors.New("negative stock")
			}
			st.Quantity += delta
			l.adjusts = append(l.adjusts, adjustCall{stockID, delta})
			return st, nil
		}
	}
	return nil, apperror.NewNotFound("stock", stockID.String())
}

type stubRenderer struct{ err error }

func (r stubRenderer) Render(_ context.Context, inv *Invoice) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-" + inv.InvoiceNumber), nil
}

type stubMailer struct {
	err  error
	sent []string
}

func (m *stubMailer) SendInvoice(_ context.Context, email, name, number string, pdf []byte) error {
	m.sent = append(m.sent, email+"|"+name+"|"+number+"|"+string(pdf))
	return m.err
}
