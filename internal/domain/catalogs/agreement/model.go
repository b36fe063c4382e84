// Package agreement provides the Agreement catalog: supply contracts
// (convenios) under which receptions are registered.
package agreement

import (
	"context"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
	"almacen/internal/core/id"
)

// Agreement represents a supply contract with a supplier.
type Agreement struct {
	entity.Catalog

	// SupplierID is the contracting supplier
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`

	// Validity period; EndDate is open when nil
	StartDate time.Time  `db:"start_date" json:"startDate"`
	EndDate   *time.Time `db:"end_date" json:"endDate,omitempty"`
}

// NewAgreement creates a new Agreement with required fields.
func NewAgreement(code, name string, supplierID id.ID) *Agreement {
	return &Agreement{
		Catalog:    entity.NewCatalog(code, name),
		SupplierID: supplierID,
	}
}

// Validate implements entity.Validatable interface.
func (a *Agreement) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(a.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}

	if a.EndDate != nil && !a.StartDate.IsZero() && a.EndDate.Before(a.StartDate) {
		return apperror.NewValidation("end date cannot precede start date").
			WithDetail("field", "endDate")
	}

	return nil
}

// IsActive reports whether the agreement covers the given date.
func (a *Agreement) IsActive(at time.Time) bool {
	if !a.StartDate.IsZero() && at.Before(a.StartDate) {
		return false
	}
	if a.EndDate != nil && at.After(*a.EndDate) {
		return false
	}
	return true
}
