// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in infrastructure layer.
package numerator

import (
	"context"
	"fmt"
	"time"
)

// Generator generates sequential document numbers for a period.
type Generator interface {
	// GetNextNumber generates the next number for period,
	// e.g. INV-20240115-0001 for InvoiceConfig.
	GetNextNumber(ctx context.Context, cfg Config, period time.Time) (string, error)
}

// Format renders a counter value according to cfg, using period's UTC date.
func Format(cfg Config, period time.Time, num int64) string {
	return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.UTC().Format(cfg.DateLayout), cfg.PadWidth, num)
}
