// Package reports provides read-only aggregations over invoices and stock.
package reports

import (
	"time"

	"inventory/internal/core/id"
	"inventory/internal/core/types"
)

// DateLayout is the UTC day key used by date-grouped reports.
const DateLayout = "2006-01-02"

// DefaultLowStockThreshold applies when the caller passes none.
const DefaultLowStockThreshold int64 = 10

// DefaultWindow is the look-back used when no start date is given.
const DefaultWindow = 30 * 24 * time.Hour

// UnknownProduct names products that no longer exist.
const UnknownProduct = "Unknown Product"

// Range is an inclusive creation-time window.
type Range struct {
	Start time.Time
	End   time.Time
}

// SalesRow is one day of the sales or returns report.
type SalesRow struct {
	Date          string      `json:"date"`
	InvoiceCount  int         `json:"invoiceCount"`
	TotalSales    types.Money `json:"totalSales"`
	TotalTax      types.Money `json:"totalTax"`
	TotalDiscount types.Money `json:"totalDiscount"`
	NetSales      types.Money `json:"netSales"`
}

// ProductSalesRow aggregates one product across invoice lines.
type ProductSalesRow struct {
	ProductID    id.ID       `json:"productId"`
	ProductName  string      `json:"productName"`
	QuantitySold int64       `json:"quantitySold"`
	TotalRevenue types.Money `json:"totalRevenue"`
	TotalProfit  types.Money `json:"totalProfit"`
}

// ProfitRow is one day of the profit report.
type ProfitRow struct {
	Date        string      `json:"date"`
	Revenue     types.Money `json:"revenue"`
	CostOfGoods types.Money `json:"costOfGoods"`
	GrossProfit types.Money `json:"grossProfit"`
	GrossMargin types.Money `json:"grossMargin"`
}

// StockRow is one product's stock summed across locations.
type StockRow struct {
	ProductID   id.ID  `json:"productId"`
	ProductName string `json:"productName"`
	TotalStock  int64  `json:"totalStock"`
	LowStock    bool   `json:"lowStock"`
}
