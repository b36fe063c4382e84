package supplier

import (
	"context"

	"almacen/internal/domain"
)

// Repository defines the interface for Supplier persistence.
type Repository interface {
	domain.CatalogRepository[*Supplier]

	// FindByTaxID retrieves a supplier by tax identifier.
	FindByTaxID(ctx context.Context, taxID string) (*Supplier, error)
}
