// Package supplier provides the Supplier catalog.
package supplier

import (
	"context"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
)

// Supplier represents a goods provider.
type Supplier struct {
	entity.Catalog

	// TaxID is the supplier's tax identifier (RUT)
	TaxID *string `db:"tax_id" json:"taxId,omitempty"`

	// Contact data
	Email *string `db:"email" json:"email,omitempty"`
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Active suppliers can be referenced by new receptions
	Active bool `db:"active" json:"active"`
}

// NewSupplier creates a new Supplier with required fields.
func NewSupplier(code, name string) *Supplier {
	return &Supplier{
		Catalog: entity.NewCatalog(code, name),
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.TaxID != nil && *s.TaxID == "" {
		return apperror.NewValidation("tax id cannot be blank when set").
			WithDetail("field", "taxId")
	}

	return nil
}
