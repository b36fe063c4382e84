package currency

import (
	"context"

	"almacen/internal/domain"
)

// Repository defines the interface for Currency persistence.
type Repository interface {
	domain.CatalogRepository[*Currency]

	// FindByISOCode retrieves currency by ISO code.
	FindByISOCode(ctx context.Context, isoCode string) (*Currency, error)

	// ClearBase clears the is_base flag on all currencies.
	ClearBase(ctx context.Context) error
}
