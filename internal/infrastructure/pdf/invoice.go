// Package pdf renders printable invoices.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"inventory/internal/core/types"
	"inventory/internal/domain/invoice"
)

// Column layout of the item table, in millimetres from the left margin.
var (
	colWidths = []float64{70, 20, 30, 30, 30}
	colTitles = []string{"Item", "Qty", "Price", "Discount", "Total"}
)

const lineHeight = 7.0

// InvoiceRenderer implements invoice.Renderer with an A4 single-table layout.
type InvoiceRenderer struct{}

var _ invoice.Renderer = InvoiceRenderer{}

// NewInvoiceRenderer creates the renderer.
func NewInvoiceRenderer() InvoiceRenderer {
	return InvoiceRenderer{}
}

// Render produces the PDF bytes for inv.
func (InvoiceRenderer) Render(_ context.Context, inv *invoice.Invoice) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Invoice "+inv.InvoiceNumber, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	date := "N/A"
	if !inv.CreatedAt.IsZero() {
		date = inv.CreatedAt.UTC().Format("2006-01-02")
	}
	for _, line := range []string{
		"Invoice Number: " + inv.InvoiceNumber,
		"Date: " + date,
		"Status: " + string(inv.Status),
		"",
		"Customer ID: " + inv.CustomerID.String(),
	} {
		doc.CellFormat(0, lineHeight, line, "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 10)
	for i, title := range colTitles {
		doc.CellFormat(colWidths[i], lineHeight, title, "B", 0, align(i), false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for _, item := range inv.Items {
		cells := []string{
			item.ProductID.String(),
			fmt.Sprintf("%d", item.Quantity),
			amount(item.Price),
			amount(item.Discount),
			amount(item.Total),
		}
		for i, text := range cells {
			doc.CellFormat(colWidths[i], lineHeight, text, "", 0, align(i), false, 0, "")
		}
		doc.Ln(-1)
	}

	tableWidth := 0.0
	for _, w := range colWidths {
		tableWidth += w
	}
	left, _, _, _ := doc.GetMargins()
	y := doc.GetY() + 2
	doc.Line(left, y, left+tableWidth, y)
	doc.Ln(6)

	labelWidth := tableWidth - colWidths[len(colWidths)-1]
	summary := func(label string, value types.Money, size float64) {
		doc.SetFont("Helvetica", "", size)
		doc.CellFormat(labelWidth, lineHeight, label, "", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[len(colWidths)-1], lineHeight, amount(value), "", 1, "R", false, 0, "")
	}
	summary("Subtotal:", inv.Subtotal, 10)
	summary("Tax:", inv.Tax, 10)
	summary("Discount:", inv.Discount, 10)
	summary("Total:", inv.Total, 12)

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, lineHeight, "Thank you for your business!", "", 1, "L", false, 0, "")
	if inv.Notes != "" {
		doc.MultiCell(0, lineHeight, "Notes: "+inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}

func amount(m types.Money) string {
	return "$" + m.StringFixed(2)
}
