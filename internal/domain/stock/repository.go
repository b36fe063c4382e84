// Package stock provides the stock accumulation register service.
package stock

import (
	"context"
	"time"

	"almacen/internal/core/entity"
	"almacen/internal/core/id"
)

// Repository defines persistence for the stock register.
// Implementations join the ambient transaction from context, so all
// methods are safe to call inside a movement confirmation.
type Repository interface {
	// GetBalance returns the current balance for a dimension pair.
	// A missing row is a zero balance, not an error.
	GetBalance(ctx context.Context, dependencyID, productID id.ID) (entity.StockBalance, error)

	// GetBalanceForUpdate locks the balance row (SELECT FOR UPDATE)
	// and returns it. Missing rows return a zero balance; the lock is
	// then taken on insert.
	GetBalanceForUpdate(ctx context.Context, dependencyID, productID id.ID) (entity.StockBalance, error)

	// ApplyDelta upserts the balance row, adding delta to quantity.
	ApplyDelta(ctx context.Context, dependencyID, productID id.ID, delta int64, at time.Time) error

	// InsertEntries appends immutable ledger entries (CopyFrom inside
	// a transaction, multi-row INSERT otherwise).
	InsertEntries(ctx context.Context, entries []entity.StockEntry) error

	// ListBalances returns balances for a dependency (or all when nil),
	// excluding zero-quantity rows.
	ListBalances(ctx context.Context, dependencyID *id.ID) ([]entity.StockBalance, error)

	// GetProductBalances returns per-dependency balances of one product.
	GetProductBalances(ctx context.Context, productID id.ID) ([]entity.StockBalance, error)
}
