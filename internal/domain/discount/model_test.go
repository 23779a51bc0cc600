package discount

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/core/types"
)

func money(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

func TestDiscount_CalculateDiscount(t *testing.T) {
	tests := []struct {
		name  string
		d     Discount
		price string
		want  string
	}{
		{"percentage", Discount{Type: TypePercentage, Value: types.MustMoney("10")}, "250", "25"},
		{"percentage capped", Discount{Type: TypePercentage, Value: types.MustMoney("50"), MaximumDiscount: money("20")}, "100", "20"},
		{"percentage under cap", Discount{Type: TypePercentage, Value: types.MustMoney("5"), MaximumDiscount: money("20")}, "100", "5"},
		{"zero cap ignored", Discount{Type: TypePercentage, Value: types.MustMoney("50"), MaximumDiscount: money("0")}, "100", "50"},
		{"fixed", Discount{Type: TypeFixed, Value: types.MustMoney("15")}, "100", "15"},
		{"fixed capped at price", Discount{Type: TypeFixed, Value: types.MustMoney("15")}, "9.99", "9.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.d.CalculateDiscount(types.MustMoney(tt.price))
			assert.True(t, got.Equal(types.MustMoney(tt.want)), "got %s", got)
		})
	}
}

func TestDiscount_IsValid(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	d := Discount{IsActive: true, StartDate: start, EndDate: end}

	assert.True(t, d.IsValid(start))
	assert.True(t, d.IsValid(end))
	assert.True(t, d.IsValid(start.Add(48*time.Hour)))
	assert.False(t, d.IsValid(start.Add(-time.Second)))
	assert.False(t, d.IsValid(end.Add(time.Second)))

	d.IsActive = false
	assert.False(t, d.IsValid(start.Add(48*time.Hour)))
}

func TestNewDiscount_Validation(t *testing.T) {
	now := time.Now()
	base := CreateInput{Name: "Spring", Type: TypeFixed, Value: types.MustMoney("5"), StartDate: now, EndDate: now.Add(time.Hour)}

	d, err := NewDiscount(context.Background(), base)
	require.NoError(t, err)
	assert.True(t, d.IsActive)
	assert.Nil(t, d.Code)
	assert.NotNil(t, d.ProductIDs)

	blank := "  "
	in := base
	in.Code = &blank
	d, err = NewDiscount(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, d.Code)

	in = base
	in.Type = "bogus"
	_, err = NewDiscount(context.Background(), in)
	assert.Error(t, err)

	in = base
	in.EndDate = now.Add(-time.Hour)
	_, err = NewDiscount(context.Background(), in)
	assert.Error(t, err)
}

func TestPatch_Apply_Limits(t *testing.T) {
	tests := []struct {
		name    string
		patch   Patch
		wantMin *types.Money
		wantMax *types.Money
		columns []string
	}{
		{
			name:    "untouched",
			patch:   Patch{},
			wantMin: money("50"),
			wantMax: money("20"),
			columns: []string{"updated_at"},
		},
		{
			name:    "clear both",
			patch:   Patch{ClearMinimumPurchase: true, ClearMaximumDiscount: true},
			columns: []string{"minimum_purchase", "maximum_discount", "updated_at"},
		},
		{
			name:    "value wins over clear",
			patch:   Patch{MinimumPurchase: money("75"), ClearMinimumPurchase: true},
			wantMin: money("75"),
			wantMax: money("20"),
			columns: []string{"minimum_purchase", "updated_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Discount{MinimumPurchase: money("50"), MaximumDiscount: money("20")}
			columns := tt.patch.Apply(d)

			assert.Equal(t, tt.columns, columns)
			assert.Equal(t, tt.wantMin, d.MinimumPurchase)
			assert.Equal(t, tt.wantMax, d.MaximumDiscount)
		})
	}
}
