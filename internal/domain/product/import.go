package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"inventory/internal/core/apperror"
	"inventory/internal/core/id"
	"inventory/internal/domain"
)

// Spreadsheet columns.
var (
	ExportColumns   = []string{"id", "name", "description", "sku", "barcode", "price", "costPrice", "categoryId", "isActive"}
	TemplateColumns = []string{"name", "description", "sku", "barcode", "price", "costPrice", "categoryId", "isActive"}
)

// ValidateRows checks every row and returns one message per problem.
func ValidateRows(rows []domain.ImportRow) []string {
	var errs []string
	for i, row := range rows {
		n := domain.RowNumber(i)
		if strings.TrimSpace(row["name"]) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Product name is required", n))
		}
		if strings.TrimSpace(row["sku"]) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: SKU is required", n))
		}
		if !nonNegativeDecimal(row["price"]) {
			errs = append(errs, fmt.Sprintf("Row %d: Price must be a positive number", n))
		}
		if !nonNegativeDecimal(row["costPrice"]) {
			errs = append(errs, fmt.Sprintf("Row %d: Cost price must be a positive number", n))
		}
		if strings.TrimSpace(row["categoryId"]) == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Category ID is required", n))
		}
	}
	return errs
}

// InputFromRow converts a validated row into a CreateInput.
func InputFromRow(row domain.ImportRow) (CreateInput, error) {
	categoryID, err := id.Parse(strings.TrimSpace(row["categoryId"]))
	if err != nil {
		return CreateInput{}, fmt.Errorf("invalid categoryId %q", row["categoryId"])
	}
	price, err := decimal.NewFromString(strings.TrimSpace(row["price"]))
	if err != nil {
		return CreateInput{}, fmt.Errorf("invalid price: %w", err)
	}
	costPrice, err := decimal.NewFromString(strings.TrimSpace(row["costPrice"]))
	if err != nil {
		return CreateInput{}, fmt.Errorf("invalid costPrice: %w", err)
	}
	active := row["isActive"] == "Yes"
	return CreateInput{
		Name:        row["name"],
		Description: row["description"],
		SKU:         row["sku"],
		Barcode:     row["barcode"],
		Price:       price,
		CostPrice:   costPrice,
		CategoryID:  categoryID,
		IsActive:    &active,
	}, nil
}

// ExportRow flattens p into spreadsheet cells ordered as ExportColumns.
func ExportRow(p *Product) []any {
	active := "No"
	if p.IsActive {
		active = "Yes"
	}
	return []any{
		p.ID.String(), p.Name, p.Description, p.SKU, p.Barcode,
		p.Price.InexactFloat64(), p.CostPrice.InexactFloat64(), p.CategoryID.String(), active,
	}
}

// TemplateRow is the example row written under the template header.
func TemplateRow() []any {
	return []any{"", "", "", "", "", "", "", "Yes"}
}

func nonNegativeDecimal(s string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	return err == nil && !d.IsNegative()
}

// Import validates all rows first, then creates one product per row.
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
			errs = append(errs, fmt.Sprintf("Error importing product %s: %s", row["sku"], apperror.MessageOf(err)))
			continue
		}
		imported++
	}
	return domain.Imported(imported, "products", errs)
}
