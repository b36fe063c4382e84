package dto

import (
	"time"

	"almacen/internal/core/id"
	"almacen/internal/core/types"
	"almacen/internal/domain/movement"
)

// --- Request DTOs ---

// ReceptionPricingRequest carries the price block of a reception.
// Currencies reference the currency catalog.
type ReceptionPricingRequest struct {
	PurchasePrice      types.Money `json:"purchasePrice"`
	PurchaseCurrencyID id.ID       `json:"purchaseCurrencyId"`
	SalePrice          types.Money `json:"salePrice"`
	SaleCurrencyID     id.ID       `json:"saleCurrencyId"`
}

// CreateMovementRequest is the request body for creating a movement.
// Field-level checks (required references, positive quantity, pricing
// rules per type) live in the domain draft, which reports the first
// violation in a stable order.
type CreateMovementRequest struct {
	Type         string                   `json:"type" binding:"required"`
	SupplierID   id.ID                    `json:"supplierId"`
	AgreementID  id.ID                    `json:"agreementId"`
	AnnexID      id.ID                    `json:"annexId"`
	ProductID    id.ID                    `json:"productId"`
	Quantity     int64                    `json:"quantity"`
	DependencyID id.ID                    `json:"dependencyId"`
	Date         time.Time                `json:"date"`
	Pricing      *ReceptionPricingRequest `json:"pricing"`
}

// ToDraft converts the request into a domain draft.
func (r *CreateMovementRequest) ToDraft() movement.Draft {
	d := movement.Draft{
		Type:         movement.Type(r.Type),
		SupplierID:   r.SupplierID,
		AgreementID:  r.AgreementID,
		AnnexID:      r.AnnexID,
		ProductID:    r.ProductID,
		Quantity:     r.Quantity,
		DependencyID: r.DependencyID,
		Date:         r.Date,
	}
	if r.Pricing != nil {
		d.Pricing = &movement.ReceptionPricing{
			PurchasePrice:      r.Pricing.PurchasePrice,
			PurchaseCurrencyID: r.Pricing.PurchaseCurrencyID,
			SalePrice:          r.Pricing.SalePrice,
			SaleCurrencyID:     r.Pricing.SaleCurrencyID,
		}
	}
	return d
}

// AdjustmentDestinationRequest is one leg of an adjustment split.
type AdjustmentDestinationRequest struct {
	DependencyID id.ID `json:"dependencyId" binding:"required"`
	Quantity     int64 `json:"quantity"`
}

// CreateAdjustmentRequest is the request body for splitting a confirmed
// reception across destination dependencies.
type CreateAdjustmentRequest struct {
	SourceMovementID id.ID                          `json:"sourceMovementId" binding:"required"`
	Destinations     []AdjustmentDestinationRequest `json:"destinations" binding:"required"`
}

// ToDomain converts the request into a domain adjustment request.
func (r *CreateAdjustmentRequest) ToDomain() movement.AdjustmentRequest {
	req := movement.AdjustmentRequest{
		SourceMovementID: r.SourceMovementID,
		Destinations:     make([]movement.AdjustmentDestination, 0, len(r.Destinations)),
	}
	for _, d := range r.Destinations {
		req.Destinations = append(req.Destinations, movement.AdjustmentDestination{
			DependencyID: d.DependencyID,
			Quantity:     d.Quantity,
		})
	}
	return req
}

// --- Response DTOs ---

// MovementResponse is the response body for a movement.
type MovementResponse struct {
	BaseResponse
	Number           string       `json:"number"`
	Code             string       `json:"code,omitempty"`
	Type             string       `json:"type"`
	Status           string       `json:"status"`
	Date             time.Time    `json:"date"`
	DependencyID     string       `json:"dependencyId"`
	ProductID        string       `json:"productId"`
	SupplierID       string       `json:"supplierId"`
	AgreementID      string       `json:"agreementId"`
	AnnexID          string       `json:"annexId"`
	Quantity         int64        `json:"quantity"`
	PurchasePrice      *types.Money `json:"purchasePrice,omitempty"`
	PurchaseCurrencyID *string      `json:"purchaseCurrencyId,omitempty"`
	SalePrice          *types.Money `json:"salePrice,omitempty"`
	SaleCurrencyID     *string      `json:"saleCurrencyId,omitempty"`
	SourceMovementID   *string      `json:"sourceMovementId,omitempty"`
	ConfirmedAt        *time.Time   `json:"confirmedAt,omitempty"`
}

// FromMovement creates response DTO from domain entity.
func FromMovement(m *movement.Movement) *MovementResponse {
	resp := &MovementResponse{
		BaseResponse:  FromBaseDocument(m.BaseDocument),
		Number:        m.Number,
		Code:          m.Code,
		Type:          string(m.Type),
		Status:        string(m.Status),
		Date:          m.Date,
		DependencyID:  m.DependencyID.String(),
		ProductID:     m.ProductID.String(),
		SupplierID:    m.SupplierID.String(),
		AgreementID:   m.AgreementID.String(),
		AnnexID:       m.AnnexID.String(),
		Quantity:      m.Quantity,
		PurchasePrice: m.PurchasePrice,
		SalePrice:     m.SalePrice,
		ConfirmedAt:   m.ConfirmedAt,
	}
	if m.PurchaseCurrencyID != nil {
		s := m.PurchaseCurrencyID.String()
		resp.PurchaseCurrencyID = &s
	}
	if m.SaleCurrencyID != nil {
		s := m.SaleCurrencyID.String()
		resp.SaleCurrencyID = &s
	}
	if m.SourceMovementID != nil {
		s := m.SourceMovementID.String()
		resp.SourceMovementID = &s
	}
	return resp
}

// FromMovements converts a slice of movements.
func FromMovements(items []*movement.Movement) []*MovementResponse {
	out := make([]*MovementResponse, 0, len(items))
	for _, m := range items {
		out = append(out, FromMovement(m))
	}
	return out
}

// RemainingResponse reports how much of a reception is still available
// for adjustment.
type RemainingResponse struct {
	SourceMovementID string `json:"sourceMovementId"`
	Remaining        int64  `json:"remaining"`
}
