// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"inventory/internal/domain"
)

// --- List Request ---

// ListQuery contains the common list parameters.
type ListQuery struct {
	Search  string `form:"search"`
	OrderBy string `form:"orderBy"`
	Limit   *int   `form:"limit" binding:"omitempty,min=0,max=500"`
	Offset  int    `form:"offset" binding:"min=0"`
}

// ToFilter converts to domain filter, keeping the defaults for unset fields.
func (q ListQuery) ToFilter() domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = q.Search
	filter.Offset = q.Offset
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.Limit != nil {
		filter.Limit = *q.Limit
	}
	return filter
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// FromListResult creates ListResponse from a domain page.
func FromListResult[T any](r domain.ListResult[T]) ListResponse {
	items := r.Items
	if items == nil {
		items = []T{}
	}
	return ListResponse{
		Items:      items,
		TotalCount: r.TotalCount,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}
}

// ItemsResponse wraps unpaginated lists.
type ItemsResponse struct {
	Items any `json:"items"`
}

// Items wraps s, rendering nil as an empty array.
func Items[T any](s []T) ItemsResponse {
	if s == nil {
		s = []T{}
	}
	return ItemsResponse{Items: s}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
