// Package dependency provides the Dependency catalog: the locations
// (dependencias) that hold stock and between which it is redistributed.
package dependency

import (
	"context"

	"almacen/internal/core/entity"
)

// Dependency represents a stock-holding location.
type Dependency struct {
	entity.Catalog

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`

	// Manager is the person responsible for the location
	Manager *string `db:"manager" json:"manager,omitempty"`

	// IsCentral marks the central warehouse that receives supplier
	// deliveries before redistribution
	IsCentral bool `db:"is_central" json:"isCentral"`
}

// NewDependency creates a new Dependency with required fields.
func NewDependency(code, name string) *Dependency {
	return &Dependency{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (d *Dependency) Validate(ctx context.Context) error {
	return d.Catalog.Validate(ctx)
}
