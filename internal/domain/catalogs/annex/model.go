// Package annex provides the Annex catalog: amendments (anexos)
// attached to a supply agreement.
package annex

import (
	"context"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
	"almacen/internal/core/id"
)

// Annex represents an amendment to an agreement.
type Annex struct {
	entity.Catalog

	// AgreementID is the agreement this annex amends
	AgreementID id.ID `db:"agreement_id" json:"agreementId"`

	// Description of the amendment
	Description *string `db:"description" json:"description,omitempty"`
}

// NewAnnex creates a new Annex with required fields.
func NewAnnex(code, name string, agreementID id.ID) *Annex {
	return &Annex{
		Catalog:     entity.NewCatalog(code, name),
		AgreementID: agreementID,
	}
}

// Validate implements entity.Validatable interface.
func (a *Annex) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(a.AgreementID) {
		return apperror.NewValidation("agreement is required").
			WithDetail("field", "agreementId")
	}

	return nil
}
