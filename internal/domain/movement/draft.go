package movement

import (
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/core/types"
)

// ReceptionPricing carries the price fields that only receptions have.
// Keeping it as a separate struct makes the pricing requirement
// structural: non-reception drafts simply have no place for prices.
type ReceptionPricing struct {
	PurchasePrice      types.Money `json:"purchasePrice"`
	PurchaseCurrencyID id.ID       `json:"purchaseCurrencyId"`
	SalePrice          types.Money `json:"salePrice"`
	SaleCurrencyID     id.ID       `json:"saleCurrencyId"`
}

// Draft holds user input for a movement before validation.
// Build reports the first violation found, in a fixed field order, so
// the client can focus the offending input.
type Draft struct {
	Type Type `json:"type"`

	SupplierID   id.ID     `json:"supplierId"`
	AgreementID  id.ID     `json:"agreementId"`
	AnnexID      id.ID     `json:"annexId"`
	ProductID    id.ID     `json:"productId"`
	Quantity     int64     `json:"quantity"`
	DependencyID id.ID     `json:"dependencyId"`
	Date         time.Time `json:"date"`

	// Pricing must be set for RECEPCION and must be absent otherwise.
	Pricing *ReceptionPricing `json:"pricing,omitempty"`
}

// Build validates the draft and produces a pending Movement.
// Validation stops at the first violation. Order: supplier, agreement,
// annex, product, quantity, dependency, date, pricing.
func (d *Draft) Build() (*Movement, error) {
	if !IsValid(d.Type) {
		return nil, apperror.NewValidation("unknown movement type").
			WithDetail("field", "type").
			WithDetail("value", string(d.Type))
	}
	if id.IsNil(d.SupplierID) {
		return nil, apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}
	if id.IsNil(d.AgreementID) {
		return nil, apperror.NewValidation("agreement is required").
			WithDetail("field", "agreementId")
	}
	if id.IsNil(d.AnnexID) {
		return nil, apperror.NewValidation("annex is required").
			WithDetail("field", "annexId")
	}
	if id.IsNil(d.ProductID) {
		return nil, apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if d.Quantity <= 0 {
		return nil, apperror.NewValidation("quantity must be a positive integer").
			WithDetail("field", "quantity")
	}
	if id.IsNil(d.DependencyID) {
		return nil, apperror.NewValidation("dependency is required").
			WithDetail("field", "dependencyId")
	}
	if d.Date.IsZero() {
		return nil, apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if d.Type == TypeRecepcion {
		if err := d.validatePricing(); err != nil {
			return nil, err
		}
	} else if d.Pricing != nil {
		return nil, apperror.NewValidation("pricing is only allowed for receptions").
			WithDetail("field", "pricing").
			WithDetail("type", string(d.Type))
	}

	m := NewMovement(d.Type)
	m.SupplierID = d.SupplierID
	m.AgreementID = d.AgreementID
	m.AnnexID = d.AnnexID
	m.ProductID = d.ProductID
	m.Quantity = d.Quantity
	m.DependencyID = d.DependencyID
	m.Date = d.Date

	if d.Pricing != nil {
		pp := d.Pricing.PurchasePrice
		pc := d.Pricing.PurchaseCurrencyID
		sp := d.Pricing.SalePrice
		sc := d.Pricing.SaleCurrencyID
		m.PurchasePrice = &pp
		m.PurchaseCurrencyID = &pc
		m.SalePrice = &sp
		m.SaleCurrencyID = &sc
	}

	return m, nil
}

func (d *Draft) validatePricing() error {
	if d.Pricing == nil {
		return apperror.NewValidation("purchase price is required for receptions").
			WithDetail("field", "purchasePrice")
	}
	if !types.IsPositiveMoney(d.Pricing.PurchasePrice) {
		return apperror.NewValidation("purchase price must be positive").
			WithDetail("field", "purchasePrice")
	}
	if id.IsNil(d.Pricing.PurchaseCurrencyID) {
		return apperror.NewValidation("purchase currency is required").
			WithDetail("field", "purchaseCurrencyId")
	}
	if !types.IsPositiveMoney(d.Pricing.SalePrice) {
		return apperror.NewValidation("sale price must be positive").
			WithDetail("field", "salePrice")
	}
	if id.IsNil(d.Pricing.SaleCurrencyID) {
		return apperror.NewValidation("sale currency is required").
			WithDetail("field", "saleCurrencyId")
	}
	return nil
}
