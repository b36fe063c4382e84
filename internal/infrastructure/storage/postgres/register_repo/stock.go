// Package register_repo provides the PostgreSQL implementation of the
// stock accumulation register.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/entity"
	"almacen/internal/core/id"
	"almacen/internal/domain/stock"
	"almacen/internal/infrastructure/storage/postgres"
)

const (
	stockEntriesTable  = "reg_stock_entries"
	stockBalancesTable = "reg_stock_balances"
)

var entryColumns = []string{
	"line_id", "recorder_id", "recorder_type",
	"period", "record_type",
	"dependency_id", "product_id", "quantity", "created_at",
}

// Compile-time check that StockRepo implements stock.Repository.
var _ stock.Repository = (*StockRepo)(nil)

// StockRepo persists the stock register in PostgreSQL. Balances are
// materialized per (dependency, product); entries are the immutable
// ledger behind them.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetBalance returns the current balance for dependency+product.
// A missing row is a zero balance, not an error.
func (r *StockRepo) GetBalance(ctx context.Context, dependencyID, productID id.ID) (entity.StockBalance, error) {
	var balance entity.StockBalance

	q := r.builder.Select(
		"dependency_id", "product_id",
		"quantity", "last_movement_at", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.Eq{
			"dependency_id": dependencyID,
			"product_id":    productID,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				DependencyID: dependencyID,
				ProductID:    productID,
				Quantity:     0,
			}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalanceForUpdate returns the balance with a pessimistic lock.
// Missing rows return a zero balance; the lock is then taken on insert.
func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, dependencyID, productID id.ID) (entity.StockBalance, error) {
	var balance entity.StockBalance

	sql := `
		SELECT dependency_id, product_id, quantity, last_movement_at, updated_at
		FROM reg_stock_balances
		WHERE dependency_id = $1 AND product_id = $2
		FOR UPDATE
	`

	querier := r.txManager.GetQuerier(ctx)
	err := pgxscan.Get(ctx, querier, &balance, sql, dependencyID, productID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return entity.StockBalance{
				DependencyID: dependencyID,
				ProductID:    productID,
				Quantity:     0,
			}, nil
		}
		return balance, fmt.Errorf("get balance for update: %w", err)
	}

	return balance, nil
}

// ApplyDelta upserts the balance row, adding delta to quantity.
func (r *StockRepo) ApplyDelta(ctx context.Context, dependencyID, productID id.ID, delta int64, at time.Time) error {
	sql := `
		INSERT INTO reg_stock_balances (dependency_id, product_id, quantity, last_movement_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (dependency_id, product_id) DO UPDATE
		SET quantity = reg_stock_balances.quantity + $3,
		    last_movement_at = $4,
		    updated_at = NOW()
	`

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, dependencyID, productID, delta, at); err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}

	return nil
}

// InsertEntries appends ledger entries.
// Uses COPY when inside a transaction, multi-row INSERT otherwise.
func (r *StockRepo) InsertEntries(ctx context.Context, entries []entity.StockEntry) error {
	if len(entries) == 0 {
		return nil
	}

	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []any{
				e.LineID, e.RecorderID, e.RecorderType,
				e.Period, e.RecordType,
				e.DependencyID, e.ProductID, e.Quantity, e.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, stockEntriesTable, entryColumns, rows); err != nil {
			return fmt.Errorf("copy entries: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(stockEntriesTable).Columns(entryColumns...)
	for _, e := range entries {
		q = q.Values(
			e.LineID, e.RecorderID, e.RecorderType,
			e.Period, e.RecordType,
			e.DependencyID, e.ProductID, e.Quantity, e.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert entries: %w", err)
	}

	return nil
}

// ListBalances returns balances for a dependency (or all when nil),
// excluding zero-quantity rows.
func (r *StockRepo) ListBalances(ctx context.Context, dependencyID *id.ID) ([]entity.StockBalance, error) {
	q := r.builder.Select(
		"dependency_id", "product_id",
		"quantity", "last_movement_at", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.NotEq{"quantity": int64(0)})

	if dependencyID != nil {
		q = q.Where(squirrel.Eq{"dependency_id": *dependencyID})
	}

	q = q.OrderBy("dependency_id", "product_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// GetProductBalances returns per-dependency balances of one product.
func (r *StockRepo) GetProductBalances(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	q := r.builder.Select(
		"dependency_id", "product_id",
		"quantity", "last_movement_at", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.NotEq{"quantity": int64(0)}).
		OrderBy("dependency_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}
