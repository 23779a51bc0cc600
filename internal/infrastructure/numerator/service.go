// Package numerator provides the PostgreSQL implementation of document auto-numbering.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	corenumerator "inventory/internal/core/numerator"
)

// Querier is the subset of pgx needed to advance a sequence.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service allocates numbers from the sys_sequences table, one UPSERT per
// number, so numbers within a period have no gaps.
// Numbers are taken outside business transactions so a rolled back
// document leaves a gap rather than blocking other writers.
type Service struct {
	querier Querier
}

var _ corenumerator.Generator = (*Service)(nil)

// New creates a numerator backed by querier (usually the pool).
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// GetNextNumber generates the next number for the period's sequence key.
func (s *Service) GetNextNumber(ctx context.Context, cfg corenumerator.Config, period time.Time) (string, error) {
	key := BuildKey(cfg, period)

	var num int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
		RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("advance sequence %s: %w", key, err)
	}
	return corenumerator.Format(cfg, period, num), nil
}

// BuildKey returns the sequence key: the prefix plus the UTC date rendered
// with cfg.DateLayout.
func BuildKey(cfg corenumerator.Config, period time.Time) string {
	return cfg.Prefix + "_" + period.UTC().Format(cfg.DateLayout)
}
