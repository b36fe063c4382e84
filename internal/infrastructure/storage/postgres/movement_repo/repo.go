// Package movement_repo provides the PostgreSQL implementation of the
// movement repository.
package movement_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/domain"
	"almacen/internal/domain/movement"
	"almacen/internal/infrastructure/storage/postgres"
)

const movementTable = "mov_movements"

// Compile-time check that Repo implements movement.Repository.
var _ movement.Repository = (*Repo)(nil)

// Repo persists movements in PostgreSQL.
type Repo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewRepo creates a new movement repository.
func NewRepo(txManager *postgres.TxManager) *Repo {
	return &Repo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[movement.Movement](),
	}
}

// Builder returns a new squirrel builder.
func (r *Repo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *Repo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(movementTable)
}

// Create inserts a new movement.
func (r *Repo) Create(ctx context.Context, m *movement.Movement) error {
	data := postgres.StructToMap(m)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in movement")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(movementTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	return nil
}

// GetByID retrieves a movement by ID.
func (r *Repo) GetByID(ctx context.Context, movementID id.ID) (*movement.Movement, error) {
	return r.getByID(ctx, movementID, false)
}

// GetByIDForUpdate retrieves a movement with its row locked.
// Must run inside a transaction.
func (r *Repo) GetByIDForUpdate(ctx context.Context, movementID id.ID) (*movement.Movement, error) {
	return r.getByID(ctx, movementID, true)
}

func (r *Repo) getByID(ctx context.Context, movementID id.ID, forUpdate bool) (*movement.Movement, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": movementID})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var m movement.Movement
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("movement", movementID.String())
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}

	return &m, nil
}

// Update modifies an existing movement with optimistic locking.
func (r *Repo) Update(ctx context.Context, m *movement.Movement) error {
	data := postgres.StructToMap(m)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in movement")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("movement has no 'version' field or it is not an int")
	}

	// Exclude immutable fields
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" || col == "created_by" {
			continue
		}
		if col == "version" || col == "updated_at" {
			continue // managed by repo
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(movementTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": m.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("movement", m.ID.String())
	}

	return nil
}

// Delete physically removes a movement. The service guarantees only
// pending movements reach this point.
func (r *Repo) Delete(ctx context.Context, movementID id.ID) error {
	q := r.Builder().
		Delete(movementTable).
		Where(squirrel.Eq{"id": movementID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("movement", movementID.String())
	}

	return nil
}

// SumAdjustedQuantity returns the total quantity already split off the
// given source reception via AJUSTE_QUITAR legs.
func (r *Repo) SumAdjustedQuantity(ctx context.Context, sourceID id.ID) (int64, error) {
	q := r.Builder().
		Select("COALESCE(SUM(quantity), 0)").
		From(movementTable).
		Where(squirrel.Eq{"source_movement_id": sourceID}).
		Where(squirrel.Eq{"type": movement.TypeAjusteQuitar})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var total int64
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum adjusted quantity: %w", err)
	}

	return total, nil
}

// List retrieves movements newest-first.
func (r *Repo) List(ctx context.Context, f movement.ListFilter) (domain.ListResult[*movement.Movement], error) {
	return r.list(ctx, f, r.baseSelect())
}

// ListPending retrieves pending movements newest-first.
func (r *Repo) ListPending(ctx context.Context, f movement.ListFilter) (domain.ListResult[*movement.Movement], error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"status": movement.StatusPending})
	return r.list(ctx, f, q)
}

// ListReceptionsInStock retrieves confirmed receptions whose quantity
// has not been fully redistributed by adjustments.
func (r *Repo) ListReceptionsInStock(ctx context.Context, f movement.ListFilter) (domain.ListResult[*movement.Movement], error) {
	remaining := fmt.Sprintf(`quantity > (
		SELECT COALESCE(SUM(a.quantity), 0)
		FROM %s a
		WHERE a.source_movement_id = %s.id
		  AND a.type = ?
	)`, movementTable, movementTable)

	q := r.baseSelect().
		Where(squirrel.Eq{"type": movement.TypeRecepcion}).
		Where(squirrel.Eq{"status": movement.StatusConfirmed}).
		Where(squirrel.Expr(remaining, movement.TypeAjusteQuitar))

	return r.list(ctx, f, q)
}

func (r *Repo) list(ctx context.Context, f movement.ListFilter, q squirrel.SelectBuilder) (domain.ListResult[*movement.Movement], error) {
	result := domain.ListResult[*movement.Movement]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": *f.Type})
	}

	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}

	if f.DependencyID != nil {
		q = q.Where(squirrel.Eq{"dependency_id": *f.DependencyID})
	}

	// Count total (before pagination)
	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("date DESC", "created_at DESC")

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list movements: %w", err)
	}

	return result, nil
}
