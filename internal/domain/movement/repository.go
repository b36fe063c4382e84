package movement

import (
	"context"

	"almacen/internal/core/id"
	"almacen/internal/domain"
)

// ListFilter contains filtering options for movement lists.
type ListFilter struct {
	// Search matches against number, code and product name
	Search string

	// Type filters by movement type
	Type *Type

	// Status filters by lifecycle state
	Status *Status

	// DependencyID scopes the list to one dependency
	DependencyID *id.ID

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults. Movements are always
// listed newest-first by business date.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}

// Repository defines persistence for movements.
type Repository interface {
	// Create inserts a pending movement
	Create(ctx context.Context, m *Movement) error

	// GetByID retrieves a movement
	GetByID(ctx context.Context, movementID id.ID) (*Movement, error)

	// GetByIDForUpdate retrieves a movement with its row locked.
	// Must run inside a transaction.
	GetByIDForUpdate(ctx context.Context, movementID id.ID) (*Movement, error)

	// Update modifies an existing movement (optimistic locking)
	Update(ctx context.Context, m *Movement) error

	// Delete physically removes a pending movement.
	// Returns NotFound if the movement does not exist.
	Delete(ctx context.Context, movementID id.ID) error

	// SumAdjustedQuantity returns the total quantity of AJUSTE_QUITAR
	// legs referencing the given source movement.
	SumAdjustedQuantity(ctx context.Context, sourceID id.ID) (int64, error)

	// List retrieves movements newest-first
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error)

	// ListPending retrieves pending movements newest-first
	ListPending(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error)

	// ListReceptionsInStock retrieves confirmed receptions that still
	// have quantity left to split.
	ListReceptionsInStock(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error)
}
