package dependency

import (
	"context"

	"almacen/internal/domain"
)

// Repository defines the interface for Dependency persistence.
type Repository interface {
	domain.CatalogRepository[*Dependency]

	// FindCentral retrieves the central warehouse.
	FindCentral(ctx context.Context) (*Dependency, error)
}
