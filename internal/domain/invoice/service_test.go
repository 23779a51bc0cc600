package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/core/numerator"
	"inventory/internal/core/types"
	"inventory/internal/domain/audit"
	"inventory/internal/domain/auth"
)

type fixture struct {
	svc       *Service
	invoices  *memInvoices
	ledger    *memLedger
	customers memCustomers
	mailer    *stubMailer
	customer  *auth.User
}

func newFixture() *fixture {
	customer := auth.NewUser("c@example.com", "", "Carl", "Client", auth.RoleCustomer)
	f := &fixture{
		invoices:  newMemInvoices(),
		ledger:    &memLedger{},
		customers: memCustomers{customer.ID: customer},
		mailer:    &stubMailer{},
		customer:  customer,
	}
	f.svc = NewService(Deps{
		Repo:      f.invoices,
		Customers: f.customers,
		Stock:     f.ledger,
		Numerator: &numerator.MockGenerator{},
		Audit:     audit.Nop{},
		Renderer:  stubRenderer{},
		Mailer:    f.mailer,
	})
	f.svc.now = func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }
	return f
}

func item(productID id.ID, qty int64, price, discount string) ItemInput {
	return ItemInput{ProductID: productID, Quantity: qty, Price: types.MustMoney(price), Discount: types.MustMoney(discount)}
}

func TestCreate_DeductsAcrossLocationsInLookupOrder(t *testing.T) {
	f := newFixture()
	productID := id.New()
	first := f.ledger.add(productID, "A", 3)
	second := f.ledger.add(productID, "B", 5)

	inv, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(productID, 6, "10", "1")},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), first.Quantity)
	assert.Equal(t, int64(2), second.Quantity)
	assert.Equal(t, []adjustCall{{first.ID, -3}, {second.ID, -3}}, f.ledger.adjusts)
	assert.Equal(t, StatusPending, inv.Status)
	assert.Equal(t, "INV-20240115-0001", inv.InvoiceNumber)
}

func TestCreate_ExactStockLeavesZero(t *testing.T) {
	f := newFixture()
	productID := id.New()
	a := f.ledger.add(productID, "A", 2)
	b := f.ledger.add(productID, "B", 4)

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(productID, 6, "1", "0")},
	})
	require.NoError(t, err)
	assert.Zero(t, a.Quantity)
	assert.Zero(t, b.Quantity)
}

func TestCreate_Totals(t *testing.T) {
	f := newFixture()
	p1, p2 := id.New(), id.New()
	f.ledger.add(p1, "A", 10)
	f.ledger.add(p2, "A", 10)

	inv, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(p1, 2, "10.50", "0.50"), item(p2, 3, "4", "0")},
		Tax:        types.MustMoney("3.20"),
		Discount:   types.MustMoney("1.20"),
	})
	require.NoError(t, err)

	require.Len(t, inv.Items, 2)
	assert.True(t, inv.Items[0].Total.Equal(types.MustMoney("20")))
	assert.True(t, inv.Items[1].Total.Equal(types.MustMoney("12")))

	sum := types.Zero()
	for _, it := range inv.Items {
		assert.True(t, it.Total.Equal(LineTotal(it.Price, it.Discount, it.Quantity)))
		sum = sum.Add(it.Total)
	}
	assert.True(t, inv.Subtotal.Equal(sum))
	assert.True(t, inv.Total.Equal(inv.Subtotal.Add(inv.Tax).Sub(inv.Discount)))
	assert.True(t, inv.Total.Equal(types.MustMoney("34")))
}

func TestCreate_InsufficientStockPersistsNothing(t *testing.T) {
	f := newFixture()
	productID := id.New()
	st := f.ledger.add(productID, "A", 5)

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(productID, 6, "1", "0")},
	})

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPStatus)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Contains(t, appErr.Message, "Not enough stock")
	assert.Equal(t, int64(5), st.Quantity)
	assert.Empty(t, f.invoices.items)
}

func TestCreate_AvailabilityCountsEveryRecord(t *testing.T) {
	f := newFixture()
	productID := id.New()
	short := f.ledger.add(productID, "A", -2)
	st := f.ledger.add(productID, "B", 5)

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(productID, 4, "1", "0")},
	})

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, int64(-2), short.Quantity)
	assert.Equal(t, int64(5), st.Quantity)
	assert.Empty(t, f.ledger.adjusts)
}

func TestCreate_NoStockRecords(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(id.New(), 1, "1", "0")},
	})
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))
	assert.Empty(t, f.invoices.items)
}

func TestCreate_MissingCustomerIsBadRequest(t *testing.T) {
	f := newFixture()
	productID := id.New()
	st := f.ledger.add(productID, "A", 5)

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: id.New(),
		Items:      []ItemInput{item(productID, 1, "1", "0")},
	})

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeBadRequest, appErr.Code)
	assert.Equal(t, "Customer not found", appErr.Message)
	assert.Equal(t, int64(5), st.Quantity)
}

func TestCreate_LaterItemFailureKeepsEarlierDeductions(t *testing.T) {
	f := newFixture()
	p1, p2 := id.New(), id.New()
	s1 := f.ledger.add(p1, "A", 5)
	s2 := f.ledger.add(p2, "A", 1)

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(p1, 4, "1", "0"), item(p2, 2, "1", "0")},
	})

	require.Error(t, err)
	assert.Equal(t, int64(1), s1.Quantity)
	assert.Equal(t, int64(1), s2.Quantity)
	assert.Empty(t, f.invoices.items)
}

func TestCreate_InvalidInput(t *testing.T) {
	f := newFixture()
	productID := id.New()

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"no customer", CreateInput{Items: []ItemInput{item(productID, 1, "1", "0")}}},
		{"no items", CreateInput{CustomerID: f.customer.ID}},
		{"zero quantity", CreateInput{CustomerID: f.customer.ID, Items: []ItemInput{item(productID, 0, "1", "0")}}},
		{"negative price", CreateInput{CustomerID: f.customer.ID, Items: []ItemInput{item(productID, 1, "-1", "0")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.in)
			assert.Equal(t, 400, apperror.GetHTTPStatus(err))
		})
	}
}

func TestCreate_RetriesNumberOnConflict(t *testing.T) {
	f := newFixture()
	productID := id.New()
	f.ledger.add(productID, "A", 10)
	f.invoices.numbers["INV-20240115-0001"] = true
	f.invoices.numbers["INV-20240115-0002"] = true

	inv, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(productID, 1, "1", "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-20240115-0003", inv.InvoiceNumber)
}

func TestCreate_GivesUpAfterMaxAttempts(t *testing.T) {
	f := newFixture()
	productID := id.New()
	f.ledger.add(productID, "A", 10)
	for i := 0; i < maxNumberAttempts; i++ {
		f.invoices.createErrs = append(f.invoices.createErrs, apperror.NewConflict("dup"))
	}

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(productID, 1, "1", "0")},
	})
	assert.True(t, apperror.IsConflict(err))
}

func TestCreate_NonConflictInsertErrorNotRetried(t *testing.T) {
	f := newFixture()
	productID := id.New()
	f.ledger.add(productID, "A", 10)
	f.invoices.createErrs = []error{apperror.NewInternal(errors.New("db down")), nil}

	_, err := f.svc.Create(context.Background(), CreateInput{
		CustomerID: f.customer.ID,
		Items:      []ItemInput{item(productID, 1, "1", "0")},
	})
	assert.Equal(t, 500, apperror.GetHTTPStatus(err))
	assert.Empty(t, f.invoices.items)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	productID := id.New()
	f.ledger.add(productID, "A", 10)
	inv, err := f.svc.Create(context.Background(), CreateInput{CustomerID: f.customer.ID, Items: []ItemInput{item(productID, 1, "1", "0")}})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), inv.ID, StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, updated.Status)

	_, err = f.svc.UpdateStatus(context.Background(), inv.ID, "shipped")
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))

	_, err = f.svc.UpdateStatus(context.Background(), id.New(), StatusPaid)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_Patch(t *testing.T) {
	f := newFixture()
	productID := id.New()
	f.ledger.add(productID, "A", 10)
	inv, err := f.svc.Create(context.Background(), CreateInput{CustomerID: f.customer.ID, Items: []ItemInput{item(productID, 2, "5", "0")}})
	require.NoError(t, err)

	notes := "left at door"
	refunded := StatusRefunded
	updated, err := f.svc.Update(context.Background(), inv.ID, Patch{Notes: &notes, Status: &refunded})
	require.NoError(t, err)
	assert.Equal(t, "left at door", updated.Notes)
	assert.Equal(t, StatusRefunded, updated.Status)
	assert.True(t, updated.Total.Equal(types.MustMoney("10")))
}

func TestListRecent_RequiresPositiveLimit(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ListRecent(context.Background(), 0)
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))
}

func TestDelete(t *testing.T) {
	f := newFixture()
	productID := id.New()
	f.ledger.add(productID, "A", 10)
	inv, err := f.svc.Create(context.Background(), CreateInput{CustomerID: f.customer.ID, Items: []ItemInput{item(productID, 1, "1", "0")}})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), inv.ID))
	assert.True(t, apperror.IsNotFound(f.svc.Delete(context.Background(), inv.ID)))
}

func TestSend(t *testing.T) {
	f := newFixture()
	productID := id.New()
	f.ledger.add(productID, "A", 10)
	inv, err := f.svc.Create(context.Background(), CreateInput{CustomerID: f.customer.ID, Items: []ItemInput{item(productID, 1, "1", "0")}})
	require.NoError(t, err)

	res, err := f.svc.Send(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, SendResult{Success: true, Message: "Invoice sent successfully"}, res)
	assert.Equal(t, []string{"c@example.com|Carl Client|INV-20240115-0001|%PDF-INV-20240115-0001"}, f.mailer.sent)

	f.mailer.err = errors.New("smtp down")
	res, err = f.svc.Send(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, SendResult{Success: false, Message: "Failed to send invoice"}, res)

	_, err = f.svc.Send(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))

	delete(f.customers, f.customer.ID)
	_, err = f.svc.Send(context.Background(), inv.ID)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Customer not found", appErr.Message)
}

func TestItems_ValueScan(t *testing.T) {
	items := Items{{ProductID: id.New(), Quantity: 2, Price: types.MustMoney("1.5"), Discount: types.Zero(), Total: types.MustMoney("3")}}
	v, err := items.Value()
	require.NoError(t, err)

	var back Items
	require.NoError(t, back.Scan([]byte(v.(string))))
	require.Len(t, back, 1)
	assert.Equal(t, items[0].ProductID, back[0].ProductID)
	assert.True(t, back[0].Total.Equal(items[0].Total))

	require.NoError(t, back.Scan(nil))
	assert.Empty(t, back)
	assert.Error(t, back.Scan(42))
}
