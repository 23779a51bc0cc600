package dto

import (
	"strings"
	"time"

	"inventory/internal/core/apperror"
	"inventory/internal/domain/reports"
)

// ReportRequest holds the query parameters shared by report endpoints.
// Dates are RFC 3339 timestamps or plain YYYY-MM-DD days.
type ReportRequest struct {
	StartDate         string `form:"startDate"`
	EndDate           string `form:"endDate"`
	LowStockThreshold *int64 `form:"lowStockThreshold" binding:"omitempty,min=0"`
}

// Bounds parses the date range. A plain end day covers that whole day (UTC).
func (r *ReportRequest) Bounds() (start, end *time.Time, err error) {
	if start, err = parseReportDate("startDate", r.StartDate, false); err != nil {
		return nil, nil, err
	}
	if end, err = parseReportDate("endDate", r.EndDate, true); err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, apperror.NewValidation("endDate must not be before startDate")
	}
	return start, end, nil
}

// Threshold returns the requested low-stock threshold or the default.
func (r *ReportRequest) Threshold() int64 {
	if r.LowStockThreshold == nil {
		return reports.DefaultLowStockThreshold
	}
	return *r.LowStockThreshold
}

func parseReportDate(field, value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	day, err := time.Parse(reports.DateLayout, value)
	if err != nil {
		return nil, apperror.NewValidation("invalid " + field).WithDetail(field, value)
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return &day, nil
}
