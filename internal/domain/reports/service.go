package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"inventory/internal/core/id"
	"inventory/internal/core/tx"
	"inventory/internal/core/types"
	"inventory/internal/domain/invoice"
	"inventory/internal/domain/product"
	"inventory/internal/domain/stock"
	"inventory/pkg/logger"
)

// Service provides report generation operations.
type Service struct {
	repo     Repository
	txm      tx.ReadOnlyManager
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService creates a new reports service. cache may be nil.
func NewService(repo Repository, txm tx.ReadOnlyManager, cache Cache, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, txm: txm, cache: cache, cacheTTL: cacheTTL, now: time.Now}
}

// ResolveRange fills a missing start with now minus DefaultWindow and a
// missing end with now.
func (s *Service) ResolveRange(start, end *time.Time) Range {
	now := s.now().UTC()
	r := Range{Start: now.Add(-DefaultWindow), End: now}
	if start != nil {
		r.Start = start.UTC()
	}
	if end != nil {
		r.End = end.UTC()
	}
	return r
}

// Sales summarizes paid invoices per day.
func (s *Service) Sales(ctx context.Context, r Range) ([]SalesRow, error) {
	return cached(ctx, s, rangeKey("sales", r), func(ctx context.Context) ([]SalesRow, error) {
		invoices, err := s.repo.InvoicesByStatus(ctx, invoice.StatusPaid, r)
		if err != nil {
			return nil, fmt.Errorf("get sales report: %w", err)
		}
		return foldSales(invoices), nil
	})
}

// Returns summarizes refunded invoices per day.
func (s *Service) Returns(ctx context.Context, r Range) ([]SalesRow, error) {
	return cached(ctx, s, rangeKey("returns", r), func(ctx context.Context) ([]SalesRow, error) {
		invoices, err := s.repo.InvoicesByStatus(ctx, invoice.StatusRefunded, r)
		if err != nil {
			return nil, fmt.Errorf("get returns report: %w", err)
		}
		return foldSales(invoices), nil
	})
}

// ProductSales aggregates paid invoice lines per product, priced against the
// products' current cost.
func (s *Service) ProductSales(ctx context.Context, r Range) ([]ProductSalesRow, error) {
	return cached(ctx, s, rangeKey("product-sales", r), func(ctx context.Context) ([]ProductSalesRow, error) {
		invoices, err := s.repo.InvoicesByStatus(ctx, invoice.StatusPaid, r)
		if err != nil {
			return nil, fmt.Errorf("get product sales report: %w", err)
		}
		products, err := s.productsFor(ctx, invoiceProductIDs(invoices))
		if err != nil {
			return nil, err
		}
		return foldProductSales(invoices, products), nil
	})
}

// Profit computes daily revenue against the current cost of goods sold.
func (s *Service) Profit(ctx context.Context, r Range) ([]ProfitRow, error) {
	return cached(ctx, s, rangeKey("profit", r), func(ctx context.Context) ([]ProfitRow, error) {
		invoices, err := s.repo.InvoicesByStatus(ctx, invoice.StatusPaid, r)
		if err != nil {
			return nil, fmt.Errorf("get profit report: %w", err)
		}
		products, err := s.productsFor(ctx, invoiceProductIDs(invoices))
		if err != nil {
			return nil, err
		}
		return foldProfit(invoices, products), nil
	})
}

// Stock sums quantities per product across locations. threshold <= 0 means
// DefaultLowStockThreshold.
func (s *Service) Stock(ctx context.Context, threshold int64) ([]StockRow, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	key := fmt.Sprintf("reports:stock:%d", threshold)
	return cached(ctx, s, key, func(ctx context.Context) ([]StockRow, error) {
		stocks, err := s.repo.AllStocks(ctx)
		if err != nil {
			return nil, fmt.Errorf("get stock report: %w", err)
		}
		ids := make([]id.ID, 0, len(stocks))
		for _, st := range stocks {
			ids = append(ids, st.ProductID)
		}
		products, err := s.productsFor(ctx, ids)
		if err != nil {
			return nil, err
		}
		return foldStock(stocks, products, threshold), nil
	})
}

func (s *Service) productsFor(ctx context.Context, ids []id.ID) (map[id.ID]*product.Product, error) {
	out := make(map[id.ID]*product.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	products, err := s.repo.ProductsByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("load report products: %w", err)
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// cached serves key from the cache or computes it in a read-only snapshot.
// The invalidation generation is read before computing; if a change lands
// while the snapshot is being read, the result is returned but not stored.
// Cache failures are logged and never fail the report.
func cached[T any](ctx context.Context, s *Service, key string, compute func(ctx context.Context) ([]T, error)) ([]T, error) {
	store := s.cache != nil
	var generation int64
	if store {
		var rows []T
		hit, err := s.cache.Get(ctx, key, &rows)
		if err != nil {
			logger.Warn(ctx, "report cache read failed", "key", key, "error", err)
		} else if hit {
			return rows, nil
		}
		if generation, err = s.cache.Generation(ctx); err != nil {
			logger.Warn(ctx, "report cache generation read failed", "key", key, "error", err)
			store = false
		}
	}

	var rows []T
	run := func(ctx context.Context) error {
		var err error
		rows, err = compute(ctx)
		return err
	}
	var err error
	if s.txm != nil {
		err = s.txm.ReadOnly(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return nil, err
	}

	if store {
		stored, err := s.cache.Set(ctx, key, rows, s.cacheTTL, generation)
		switch {
		case err != nil:
			logger.Warn(ctx, "report cache write failed", "key", key, "error", err)
		case !stored:
			logger.Debug(ctx, "report cache write skipped, data changed", "key", key)
		}
	}
	return rows, nil
}

func rangeKey(kind string, r Range) string {
	return fmt.Sprintf("reports:%s:%d:%d", kind, r.Start.Unix(), r.End.Unix())
}

func dayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func foldSales(invoices []*invoice.Invoice) []SalesRow {
	byDate := make(map[string]*SalesRow)
	for _, inv := range invoices {
		day := dayKey(inv.CreatedAt)
		row, ok := byDate[day]
		if !ok {
			row = &SalesRow{
				Date:          day,
				TotalSales:    types.Zero(),
				TotalTax:      types.Zero(),
				TotalDiscount: types.Zero(),
				NetSales:      types.Zero(),
			}
			byDate[day] = row
		}
		row.InvoiceCount++
		row.TotalSales = row.TotalSales.Add(inv.Subtotal)
		row.TotalTax = row.TotalTax.Add(inv.Tax)
		row.TotalDiscount = row.TotalDiscount.Add(inv.Discount)
		row.NetSales = row.NetSales.Add(inv.Total)
	}

	rows := make([]SalesRow, 0, len(byDate))
	for _, row := range byDate {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

func foldProductSales(invoices []*invoice.Invoice, products map[id.ID]*product.Product) []ProductSalesRow {
	var order []id.ID
	byProduct := make(map[id.ID]*ProductSalesRow)
	for _, inv := range invoices {
		for _, item := range inv.Items {
			row, ok := byProduct[item.ProductID]
			if !ok {
				row = &ProductSalesRow{
					ProductID:    item.ProductID,
					ProductName:  UnknownProduct,
					TotalRevenue: types.Zero(),
					TotalProfit:  types.Zero(),
				}
				if p, found := products[item.ProductID]; found {
					row.ProductName = p.Name
				}
				byProduct[item.ProductID] = row
				order = append(order, item.ProductID)
			}
			row.QuantitySold += item.Quantity
			row.TotalRevenue = row.TotalRevenue.Add(item.Total)
			if p, found := products[item.ProductID]; found {
				unitProfit := item.Price.Sub(p.CostPrice)
				row.TotalProfit = row.TotalProfit.Add(unitProfit.Mul(decimal.NewFromInt(item.Quantity)))
			}
		}
	}

	rows := make([]ProductSalesRow, 0, len(order))
	for _, productID := range order {
		rows = append(rows, *byProduct[productID])
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalRevenue.GreaterThan(rows[j].TotalRevenue) })
	return rows
}

func foldProfit(invoices []*invoice.Invoice, products map[id.ID]*product.Product) []ProfitRow {
	byDate := make(map[string]*ProfitRow)
	for _, inv := range invoices {
		day := dayKey(inv.CreatedAt)
		row, ok := byDate[day]
		if !ok {
			row = &ProfitRow{Date: day, Revenue: types.Zero(), CostOfGoods: types.Zero()}
			byDate[day] = row
		}
		row.Revenue = row.Revenue.Add(inv.Total)
		for _, item := range inv.Items {
			if p, found := products[item.ProductID]; found {
				row.CostOfGoods = row.CostOfGoods.Add(p.CostPrice.Mul(decimal.NewFromInt(item.Quantity)))
			}
		}
	}

	rows := make([]ProfitRow, 0, len(byDate))
	for _, row := range byDate {
		row.GrossProfit = row.Revenue.Sub(row.CostOfGoods)
		row.GrossMargin = types.Zero()
		if row.Revenue.IsPositive() {
			row.GrossMargin = types.Percent(row.GrossProfit, row.Revenue)
		}
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}

// foldStock evaluates LowStock once per product, on the final total.
func foldStock(stocks []*stock.Stock, products map[id.ID]*product.Product, threshold int64) []StockRow {
	var order []id.ID
	byProduct := make(map[id.ID]*StockRow)
	for _, st := range stocks {
		row, ok := byProduct[st.ProductID]
		if !ok {
			row = &StockRow{ProductID: st.ProductID, ProductName: UnknownProduct}
			if p, found := products[st.ProductID]; found {
				row.ProductName = p.Name
			}
			byProduct[st.ProductID] = row
			order = append(order, st.ProductID)
		}
		row.TotalStock += st.Quantity
	}

	rows := make([]StockRow, 0, len(order))
	for _, productID := range order {
		row := byProduct[productID]
		row.LowStock = row.TotalStock < threshold
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalStock < rows[j].TotalStock })
	return rows
}

func invoiceProductIDs(invoices []*invoice.Invoice) []id.ID {
	var ids []id.ID
	for _, inv := range invoices {
		for _, item := range inv.Items {
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func uniqueIDs(ids []id.ID) []id.ID {
	seen := make(map[id.ID]struct{}, len(ids))
	out := make([]id.ID, 0, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
