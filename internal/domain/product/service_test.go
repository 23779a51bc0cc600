package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/core/types"
	"inventory/internal/domain"
)

type memRepo struct {
	items map[id.ID]*Product
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[id.ID]*Product)}
}

func (m *memRepo) Create(_ context.Context, p *Product) error {
	for _, existing := range m.items {
		if existing.SKU == p.SKU {
			return apperror.NewConflict("product already exists")
		}
	}
	m.items[p.ID] = p
	return nil
}

func (m *memRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := m.items[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

func (m *memRepo) GetByIDs(_ context.Context, ids []id.ID) ([]*Product, error) {
	var out []*Product
	for _, productID := range ids {
		if p, ok := m.items[productID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	res := domain.EmptyResult[*Product](filter)
	res.Items, _ = m.ListAll(context.Background())
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (m *memRepo) ListAll(_ context.Context) ([]*Product, error) {
	out := make([]*Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *memRepo) ListByCategory(_ context.Context, categoryID id.ID) ([]*Product, error) {
	var out []*Product
	for _, p := range m.items {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) Update(_ context.Context, p *Product, _ []string) error {
	m.items[p.ID] = p
	return nil
}

func (m *memRepo) Delete(_ context.Context, productID id.ID) (bool, error) {
	_, ok := m.items[productID]
	delete(m.items, productID)
	return ok, nil
}

func validInput() CreateInput {
	return CreateInput{
		Name:       "Widget",
		SKU:        "W-1",
		Price:      types.MustMoney("10.00"),
		CostPrice:  types.MustMoney("6.00"),
		CategoryID: id.New(),
	}
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CreateInput)
		field  string
	}{
		{"missing name", func(in *CreateInput) { in.Name = "" }, "name"},
		{"missing sku", func(in *CreateInput) { in.SKU = " " }, "sku"},
		{"missing category", func(in *CreateInput) { in.CategoryID = id.ID{} }, "categoryId"},
		{"negative price", func(in *CreateInput) { in.Price = types.MustMoney("-1") }, "price"},
		{"negative cost", func(in *CreateInput) { in.CostPrice = types.MustMoney("-0.01") }, "costPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)
			_, err := NewProduct(context.Background(), in)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestProduct_ProfitMargin(t *testing.T) {
	p, err := NewProduct(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.Equal(t, "4", p.Profit().String())
	assert.Equal(t, "40", p.ProfitMargin().String())

	p.Price = types.Zero()
	p.CostPrice = types.Zero()
	assert.True(t, p.ProfitMargin().IsZero())
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	p, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	price := types.MustMoney("12.50")
	updated, err := svc.Update(ctx, p.ID, Patch{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))

	neg := types.MustMoney("-3")
	_, err = svc.Update(ctx, p.ID, Patch{CostPrice: &neg})
	assert.Error(t, err)

	_, err = svc.Update(ctx, id.New(), Patch{})
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.True(t, apperror.IsNotFound(svc.Delete(ctx, p.ID)))
}

func TestService_ListByCategory(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	in := validInput()
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)
	other := validInput()
	other.SKU = "W-2"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	items, err := svc.ListByCategory(ctx, in.CategoryID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "W-1", items[0].SKU)
}
