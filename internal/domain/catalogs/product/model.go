// Package product provides the Product catalog.
package product

import (
	"context"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
)

// Product represents an item tracked in stock.
type Product struct {
	entity.Catalog

	// Unit is the unit of measure (e.g., "kg", "caja", "unidad")
	Unit *string `db:"unit" json:"unit,omitempty"`

	// Perishable items need expiry handling downstream
	Perishable bool `db:"perishable" json:"perishable"`

	// MinStock is the alert threshold; 0 disables the alert
	MinStock int64 `db:"min_stock" json:"minStock"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.MinStock < 0 {
		return apperror.NewValidation("min stock cannot be negative").
			WithDetail("field", "minStock")
	}

	return nil
}
