package dto

import (
	"time"

	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/agreement"
)

// --- Request DTOs ---

// CreateAgreementRequest is the request body for creating an agreement.
type CreateAgreementRequest struct {
	Code       string     `json:"code"`
	Name       string     `json:"name" binding:"required"`
	SupplierID id.ID      `json:"supplierId" binding:"required"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	ParentID   *string    `json:"parentId"`
	IsFolder   bool       `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateAgreementRequest) ToEntity() *agreement.Agreement {
	a := agreement.NewAgreement(r.Code, r.Name, r.SupplierID)
	a.StartDate = r.StartDate
	a.EndDate = r.EndDate
	a.ParentID = r.ParentID
	a.IsFolder = r.IsFolder
	return a
}

// UpdateAgreementRequest is the request body for updating an agreement.
type UpdateAgreementRequest struct {
	Code       string     `json:"code"`
	Name       string     `json:"name" binding:"required"`
	SupplierID id.ID      `json:"supplierId" binding:"required"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	ParentID   *string    `json:"parentId"`
	IsFolder   bool       `json:"isFolder"`
	Version    int        `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateAgreementRequest) ApplyTo(a *agreement.Agreement) {
	a.Code = r.Code
	a.Name = r.Name
	a.SupplierID = r.SupplierID
	a.StartDate = r.StartDate
	a.EndDate = r.EndDate
	a.ParentID = r.ParentID
	a.IsFolder = r.IsFolder
	a.Version = r.Version
}

// --- Response DTOs ---

// AgreementResponse is the response body for an agreement.
type AgreementResponse struct {
	CatalogResponse
	SupplierID string     `json:"supplierId"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate,omitempty"`
}

// FromAgreement creates response DTO from domain entity.
func FromAgreement(a *agreement.Agreement) *AgreementResponse {
	return &AgreementResponse{
		CatalogResponse: FromCatalog(a.Catalog),
		SupplierID:      a.SupplierID.String(),
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
	}
}
