package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"inventory/internal/core/tx"
	"inventory/pkg/logger"
)

var tracer = otel.Tracer("inventory/tx")

var _ tx.ReadOnlyManager = (*TxManager)(nil)

// readOnlyTimeout bounds every statement inside a ReadOnly block.
const readOnlyTimeout = 30 * time.Second

// TxManager hands repositories the querier bound to the current context:
// the snapshot transaction inside ReadOnly, the pool elsewhere.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a transaction manager on pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

type txKey struct{}

// ReadOnly executes fn in a read-only repeatable-read transaction,
// so every query inside fn sees the same snapshot. Nested calls reuse
// the outer transaction.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, "read-only snapshot")
	defer span.End()

	snapshot, err := m.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("begin read-only transaction: %w", err)
	}
	// Read-only work has nothing to commit; rollback just releases the snapshot.
	defer func() {
		if err := snapshot.Rollback(context.Background()); err != nil {
			logger.Warn(ctx, "release read-only transaction", "error", err)
		}
	}()

	if _, err := snapshot.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", readOnlyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("set statement_timeout: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, snapshot)); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func txFrom(ctx context.Context) pgx.Tx {
	t, _ := ctx.Value(txKey{}).(pgx.Tx)
	return t
}

// Querier is the subset of pgx shared by pools and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// GetQuerier returns the transaction bound to ctx, or the pool outside a transaction.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if t := txFrom(ctx); t != nil {
		return t
	}
	return m.pool
}
