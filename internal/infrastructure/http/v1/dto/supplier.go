package dto

import (
	"almacen/internal/domain/catalogs/supplier"
)

// --- Request DTOs ---

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name" binding:"required"`
	TaxID    *string `json:"taxId"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Active   *bool   `json:"active"`
	ParentID *string `json:"parentId"`
	IsFolder bool    `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.NewSupplier(r.Code, r.Name)
	s.TaxID = r.TaxID
	s.Email = r.Email
	s.Phone = r.Phone
	if r.Active != nil {
		s.Active = *r.Active
	}
	s.ParentID = r.ParentID
	s.IsFolder = r.IsFolder
	return s
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name" binding:"required"`
	TaxID    *string `json:"taxId"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Active   bool    `json:"active"`
	ParentID *string `json:"parentId"`
	IsFolder bool    `json:"isFolder"`
	Version  int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.Code = r.Code
	s.Name = r.Name
	s.TaxID = r.TaxID
	s.Email = r.Email
	s.Phone = r.Phone
	s.Active = r.Active
	s.ParentID = r.ParentID
	s.IsFolder = r.IsFolder
	s.Version = r.Version
}

// --- Response DTOs ---

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	CatalogResponse
	TaxID  *string `json:"taxId,omitempty"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active bool    `json:"active"`
}

// FromSupplier creates response DTO from domain entity.
func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		TaxID:           s.TaxID,
		Email:           s.Email,
		Phone:           s.Phone,
		Active:          s.Active,
	}
}
