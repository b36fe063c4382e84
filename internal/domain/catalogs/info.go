// Package catalogs wires the individual catalog services together for
// consumers that need cross-catalog lookups.
package catalogs

import (
	"context"

	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/agreement"
	"almacen/internal/domain/catalogs/annex"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/domain/catalogs/supplier"
)

// Info resolves codes and names across catalogs. It satisfies the
// movement service's CatalogInfo dependency.
type Info struct {
	products   *product.Service
	suppliers  *supplier.Service
	agreements *agreement.Service
	annexes    *annex.Service
}

// NewInfo creates a catalog info resolver.
func NewInfo(
	products *product.Service,
	suppliers *supplier.Service,
	agreements *agreement.Service,
	annexes *annex.Service,
) *Info {
	return &Info{
		products:   products,
		suppliers:  suppliers,
		agreements: agreements,
		annexes:    annexes,
	}
}

// ProductInfo returns the code and name of a product.
func (i *Info) ProductInfo(ctx context.Context, productID id.ID) (string, string, error) {
	p, err := i.products.GetByID(ctx, productID)
	if err != nil {
		return "", "", err
	}
	return p.Code, p.Name, nil
}

// SupplierCode returns the code of a supplier.
func (i *Info) SupplierCode(ctx context.Context, supplierID id.ID) (string, error) {
	s, err := i.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return "", err
	}
	return s.Code, nil
}

// AgreementCode returns the code of an agreement.
func (i *Info) AgreementCode(ctx context.Context, agreementID id.ID) (string, error) {
	a, err := i.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return "", err
	}
	return a.Code, nil
}

// AnnexCode returns the code of an annex.
func (i *Info) AnnexCode(ctx context.Context, annexID id.ID) (string, error) {
	a, err := i.annexes.GetByID(ctx, annexID)
	if err != nil {
		return "", err
	}
	return a.Code, nil
}
