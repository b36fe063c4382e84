package annex

import (
	"context"

	"almacen/internal/core/id"
	"almacen/internal/domain"
)

// Repository defines the interface for Annex persistence.
type Repository interface {
	domain.CatalogRepository[*Annex]

	// FindByAgreement retrieves annexes of one agreement.
	FindByAgreement(ctx context.Context, agreementID id.ID) ([]*Annex, error)
}
