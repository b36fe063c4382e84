package agreement

import (
	"context"

	"almacen/internal/core/id"
	"almacen/internal/domain"
)

// Repository defines the interface for Agreement persistence.
type Repository interface {
	domain.CatalogRepository[*Agreement]

	// FindBySupplier retrieves agreements of one supplier.
	FindBySupplier(ctx context.Context, supplierID id.ID) ([]*Agreement, error)
}
