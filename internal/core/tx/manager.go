// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces; the postgres package implements them.
package tx

import "context"

// ReadOnlyManager runs work against one consistent snapshot.
type ReadOnlyManager interface {
	// ReadOnly executes fn in a read-only transaction. Queries made with
	// the context passed to fn share that transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
