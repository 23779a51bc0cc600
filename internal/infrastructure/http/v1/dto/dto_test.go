package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/core/apperror"
	"inventory/internal/domain/reports"
)

func TestReportRequest_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		req       ReportRequest
		wantStart *time.Time
		wantEnd   *time.Time
		wantErr   bool
	}{
		{name: "empty", req: ReportRequest{}},
		{
			name:      "plain days cover the whole end day",
			req:       ReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"},
			wantStart: ptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			wantEnd:   ptr(time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)),
		},
		{
			name:    "timestamps are kept",
			req:     ReportRequest{EndDate: "2024-01-31T12:00:00Z"},
			wantEnd: ptr(time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)),
		},
		{name: "garbage", req: ReportRequest{StartDate: "yesterday"}, wantErr: true},
		{name: "reversed", req: ReportRequest{StartDate: "2024-02-01", EndDate: "2024-01-01"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.req.Bounds()
			if tt.wantErr {
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
				return
			}
			require.NoError(t, err)
			assertTime(t, tt.wantStart, start)
			assertTime(t, tt.wantEnd, end)
		})
	}
}

func TestReportRequest_Threshold(t *testing.T) {
	assert.Equal(t, reports.DefaultLowStockThreshold, (&ReportRequest{}).Threshold())

	five := int64(5)
	assert.Equal(t, int64(5), (&ReportRequest{LowStockThreshold: &five}).Threshold())
}

func TestListQuery_ToFilter(t *testing.T) {
	f := ListQuery{}.ToFilter()
	assert.Equal(t, 50, f.Limit)
	assert.Equal(t, "-created_at", f.OrderBy)

	zero := 0
	f = ListQuery{Search: "wid", OrderBy: "name", Limit: &zero, Offset: 20}.ToFilter()
	assert.Equal(t, "wid", f.Search)
	assert.Equal(t, "name", f.OrderBy)
	assert.Equal(t, 0, f.Limit)
	assert.Equal(t, 20, f.Offset)
}

func ptr(t time.Time) *time.Time { return &t }

func assertTime(t *testing.T, want, got *time.Time) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s, got %s", want, got)
}
