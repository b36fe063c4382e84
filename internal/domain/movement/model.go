package movement

import (
	"context"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
	"almacen/internal/core/id"
	"almacen/internal/core/types"
)

// Movement is an inventory movement document. It is created in
// StatusPending and affects stock only when confirmed.
type Movement struct {
	entity.BaseDocument

	// Number is the sequential document number (MOV-2026-00001)
	Number string `db:"number" json:"number"`

	// Code is the composed reception code
	// (year-supplier-agreement-annex-product). Empty for non-receptions.
	Code string `db:"code" json:"code,omitempty"`

	Type   Type   `db:"type" json:"type"`
	Status Status `db:"status" json:"status"`

	// Date is the business date of the movement
	Date time.Time `db:"date" json:"date"`

	// References (all required)
	DependencyID id.ID `db:"dependency_id" json:"dependencyId"`
	ProductID    id.ID `db:"product_id" json:"productId"`
	SupplierID   id.ID `db:"supplier_id" json:"supplierId"`
	AgreementID  id.ID `db:"agreement_id" json:"agreementId"`
	AnnexID      id.ID `db:"annex_id" json:"annexId"`

	// Quantity is always positive; direction comes from the type factor.
	Quantity int64 `db:"quantity" json:"quantity"`

	// Pricing, present only for receptions (and adjustment legs that
	// inherit provenance from a reception).
	PurchasePrice      *types.Money `db:"purchase_price" json:"purchasePrice,omitempty"`
	PurchaseCurrencyID *id.ID       `db:"purchase_currency_id" json:"purchaseCurrencyId,omitempty"`
	SalePrice          *types.Money `db:"sale_price" json:"salePrice,omitempty"`
	SaleCurrencyID     *id.ID       `db:"sale_currency_id" json:"saleCurrencyId,omitempty"`

	// SourceMovementID links adjustment legs to the reception they
	// redistribute. Nil for ordinary movements.
	SourceMovementID *id.ID `db:"source_movement_id" json:"sourceMovementId,omitempty"`

	// ConfirmedAt is set when the movement is applied to stock.
	ConfirmedAt *time.Time `db:"confirmed_at" json:"confirmedAt,omitempty"`
}

// NewMovement creates a pending movement of the given type.
func NewMovement(t Type) *Movement {
	return &Movement{
		BaseDocument: entity.NewBaseDocument(),
		Type:         t,
		Status:       StatusPending,
	}
}

// Validate implements entity.Validatable.
func (m *Movement) Validate(ctx context.Context) error {
	if !IsValid(m.Type) {
		return apperror.NewValidation("unknown movement type").
			WithDetail("field", "type").
			WithDetail("value", string(m.Type))
	}
	if id.IsNil(m.DependencyID) {
		return apperror.NewValidation("dependency is required").
			WithDetail("field", "dependencyId")
	}
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if m.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if m.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// IsPending reports whether the movement has not been confirmed yet.
func (m *Movement) IsPending() bool {
	return m.Status == StatusPending
}

// IsConfirmed reports whether the movement has been applied to stock.
func (m *Movement) IsConfirmed() bool {
	return m.Status == StatusConfirmed
}

// CanModify returns an error if the movement is already confirmed.
// Confirmed movements are immutable: their stock effect is recorded.
func (m *Movement) CanModify() error {
	if m.IsConfirmed() {
		return apperror.NewBusinessRule(
			apperror.CodeMovementConfirmed,
			"movement is already confirmed and cannot be modified or deleted",
		).WithDetail("movement_id", m.ID.String())
	}
	return nil
}

// MarkConfirmed transitions the movement to CONFIRMADO.
func (m *Movement) MarkConfirmed(at time.Time) error {
	if m.IsConfirmed() {
		return apperror.NewBusinessRule(
			apperror.CodeMovementConfirmed,
			"movement is already confirmed",
		).WithDetail("movement_id", m.ID.String())
	}
	m.Status = StatusConfirmed
	m.ConfirmedAt = &at
	m.Touch()
	return nil
}

// Factor returns the signed stock direction of this movement.
func (m *Movement) Factor() (int64, error) {
	return Factor(m.Type)
}

// IsAdjustmentLeg reports whether the movement was produced by a split.
func (m *Movement) IsAdjustmentLeg() bool {
	return m.SourceMovementID != nil
}
