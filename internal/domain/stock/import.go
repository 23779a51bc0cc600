package stock

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// DateLayout is the expiry date format used in spreadsheets.
const DateLayout = "2006-01-02"

// Spreadsheet columns.
var (
	ExportColumns   = []string{"id", "productId", "quantity", "locationId", "batchNumber", "expiryDate"}
	TemplateColumns = []string{"productId", "quantity", "locationId", "batchNumber", "expiryDate"}
)

// ValidateRows checks every row and returns one message per problem.
func ValidateRows(rows []domain.ImportRow) []string {
	var errs []string
	for i, row := range rows {
		n := domain.RowNumber(i)
		if strings.TrimSpace(row["productId"]) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Product ID is required", n))
		}
		if q, err := strconv.ParseInt(strings.TrimSpace(row["quantity"]), 10, 64); err != nil || q < 0 {
			errs = append(errs, fmt.Sprintf("Row %d: Quantity must be a positive integer", n))
		}
		if strings.TrimSpace(row["locationId"]) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Location ID is required", n))
		}
	}
	return errs
}

// InputFromRow converts a validated row into a CreateInput.
func InputFromRow(row domain.ImportRow) (CreateInput, error) {
	productID, err := id.Parse(strings.TrimSpace(row["productId"]))
	if err != nil {
		return CreateInput{}, fmt.Errorf("invalid productId %q", row["productId"])
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(row["quantity"]), 10, 64)
	if err != nil {
		return CreateInput{}, fmt.Errorf("invalid quantity: %w", err)
	}
	in := CreateInput{
		ProductID:   productID,
		LocationID:  row["locationId"],
		Quantity:    qty,
		BatchNumber: row["batchNumber"],
	}
	if raw := strings.TrimSpace(row["expiryDate"]); raw != "" {
		exp, err := time.Parse(DateLayout, raw)
		if err != nil {
			return CreateInput{}, fmt.Errorf("invalid expiryDate %q", raw)
		}
		in.ExpiryDate = &exp
	}
	return in, nil
}

// ExportRow flattens s into spreadsheet cells ordered as ExportColumns.
func ExportRow(s *Stock) []any {
	expiry := ""
	if s.ExpiryDate != nil {
		expiry = s.ExpiryDate.UTC().Format(DateLayout)
	}
	return []any{s.ID.String(), s.ProductID.String(), s.Quantity, s.LocationID, s.BatchNumber, expiry}
}

// TemplateRow is the example row written under the template header.
func TemplateRow() []any {
	return []any{"", "", "", "", ""}
}

// Import validates all rows first, then creates one record per row.
// A failing row does not stop the remaining ones.
func (s *Service) Import(ctx context.Context, rows []domain.ImportRow) domain.ImportResult {
	if errs := ValidateRows(rows); len(errs) > 0 {
		return domain.ValidationFailed(errs)
	}

	var (
		imported int
		errs     []string
	)
	for _, row := range rows {
		in, err := InputFromRow(row)
		if err == nil {
			_, err = s.Create(ctx, in)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("Error importing stock for product %s: %s", row["productId"], apperror.MessageOf(err)))
			continue
		}
		imported++
	}
	return domain.Imported(imported, "stocks", errs)
}
