package movement

import (
	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
)

// AdjustmentDestination is one leg of a quantity split: how much of the
// source reception should be moved to which dependency.
type AdjustmentDestination struct {
	DependencyID id.ID `json:"dependencyId"`
	Quantity     int64 `json:"quantity"`
}

// AdjustmentRequest asks to redistribute part of a reception's quantity
// across other dependencies. Each destination becomes a pair of pending
// movements: AJUSTE_QUITAR at the source, AJUSTE_AGREGAR at the target.
type AdjustmentRequest struct {
	SourceMovementID id.ID                   `json:"sourceMovementId"`
	Destinations     []AdjustmentDestination `json:"destinations"`
}

// ValidateSplit checks an adjustment request against the source
// movement and the quantity still available to split. Any client-side
// check is advisory only; the repository re-runs this inside the
// transaction with the source row locked.
func ValidateSplit(source *Movement, remaining int64, req AdjustmentRequest) error {
	if len(req.Destinations) == 0 {
		return apperror.NewValidation("at least one destination is required").
			WithDetail("field", "destinations")
	}

	var total int64
	for i, dest := range req.Destinations {
		if id.IsNil(dest.DependencyID) {
			return apperror.NewValidation("destination dependency is required").
				WithDetail("field", "destinations").
				WithDetail("index", i)
		}
		if dest.DependencyID == source.DependencyID {
			return apperror.NewValidation("destination cannot be the source dependency").
				WithDetail("field", "destinations").
				WithDetail("index", i).
				WithDetail("dependencyId", dest.DependencyID.String())
		}
		if dest.Quantity <= 0 {
			return apperror.NewValidation("destination quantity must be positive").
				WithDetail("field", "destinations").
				WithDetail("index", i)
		}
		total += dest.Quantity
	}

	if total > remaining {
		return apperror.NewValidation("total to split exceeds available quantity").
			WithDetail("field", "destinations").
			WithDetail("requested", total).
			WithDetail("available", remaining)
	}

	return nil
}

// BuildLegs produces the pending movement pairs for a validated split.
// Destination legs inherit provenance and pricing from the source
// reception so downstream reporting stays consistent.
func BuildLegs(source *Movement, req AdjustmentRequest) []*Movement {
	legs := make([]*Movement, 0, len(req.Destinations)*2)

	for _, dest := range req.Destinations {
		out := NewMovement(TypeAjusteQuitar)
		out.DependencyID = source.DependencyID
		out.ProductID = source.ProductID
		out.SupplierID = source.SupplierID
		out.AgreementID = source.AgreementID
		out.AnnexID = source.AnnexID
		out.Quantity = dest.Quantity
		out.Date = source.Date
		out.SourceMovementID = &source.ID
		copyPricing(source, out)

		in := NewMovement(TypeAjusteAgregar)
		in.DependencyID = dest.DependencyID
		in.ProductID = source.ProductID
		in.SupplierID = source.SupplierID
		in.AgreementID = source.AgreementID
		in.AnnexID = source.AnnexID
		in.Quantity = dest.Quantity
		in.Date = source.Date
		in.SourceMovementID = &source.ID
		copyPricing(source, in)

		legs = append(legs, out, in)
	}

	return legs
}

func copyPricing(from, to *Movement) {
	if from.PurchasePrice != nil {
		pp := *from.PurchasePrice
		to.PurchasePrice = &pp
	}
	if from.PurchaseCurrencyID != nil {
		pc := *from.PurchaseCurrencyID
		to.PurchaseCurrencyID = &pc
	}
	if from.SalePrice != nil {
		sp := *from.SalePrice
		to.SalePrice = &sp
	}
	if from.SaleCurrencyID != nil {
		sc := *from.SaleCurrencyID
		to.SaleCurrencyID = &sc
	}
}
