package dto

import (
	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/annex"
)

// --- Request DTOs ---

// CreateAnnexRequest is the request body for creating an annex.
type CreateAnnexRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	AgreementID id.ID   `json:"agreementId" binding:"required"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	IsFolder    bool    `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateAnnexRequest) ToEntity() *annex.Annex {
	a := annex.NewAnnex(r.Code, r.Name, r.AgreementID)
	a.Description = r.Description
	a.ParentID = r.ParentID
	a.IsFolder = r.IsFolder
	return a
}

// UpdateAnnexRequest is the request body for updating an annex.
type UpdateAnnexRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	AgreementID id.ID   `json:"agreementId" binding:"required"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	IsFolder    bool    `json:"isFolder"`
	Version     int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateAnnexRequest) ApplyTo(a *annex.Annex) {
	a.Code = r.Code
	a.Name = r.Name
	a.AgreementID = r.AgreementID
	a.Description = r.Description
	a.ParentID = r.ParentID
	a.IsFolder = r.IsFolder
	a.Version = r.Version
}

// --- Response DTOs ---

// AnnexResponse is the response body for an annex.
type AnnexResponse struct {
	CatalogResponse
	AgreementID string  `json:"agreementId"`
	Description *string `json:"description,omitempty"`
}

// FromAnnex creates response DTO from domain entity.
func FromAnnex(a *annex.Annex) *AnnexResponse {
	return &AnnexResponse{
		CatalogResponse: FromCatalog(a.Catalog),
		AgreementID:     a.AgreementID.String(),
		Description:     a.Description,
	}
}
