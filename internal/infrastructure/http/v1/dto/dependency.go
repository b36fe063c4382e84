package dto

import (
	"almacen/internal/domain/catalogs/dependency"
)

// --- Request DTOs ---

// CreateDependencyRequest is the request body for creating a dependency.
type CreateDependencyRequest struct {
	Code      string  `json:"code"`
	Name      string  `json:"name" binding:"required"`
	Address   *string `json:"address"`
	Manager   *string `json:"manager"`
	IsCentral bool    `json:"isCentral"`
	ParentID  *string `json:"parentId"`
	IsFolder  bool    `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateDependencyRequest) ToEntity() *dependency.Dependency {
	d := dependency.NewDependency(r.Code, r.Name)
	d.Address = r.Address
	d.Manager = r.Manager
	d.IsCentral = r.IsCentral
	d.ParentID = r.ParentID
	d.IsFolder = r.IsFolder
	return d
}

// UpdateDependencyRequest is the request body for updating a dependency.
type UpdateDependencyRequest struct {
	Code      string  `json:"code"`
	Name      string  `json:"name" binding:"required"`
	Address   *string `json:"address"`
	Manager   *string `json:"manager"`
	IsCentral bool    `json:"isCentral"`
	ParentID  *string `json:"parentId"`
	IsFolder  bool    `json:"isFolder"`
	Version   int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateDependencyRequest) ApplyTo(d *dependency.Dependency) {
	d.Code = r.Code
	d.Name = r.Name
	d.Address = r.Address
	d.Manager = r.Manager
	d.IsCentral = r.IsCentral
	d.ParentID = r.ParentID
	d.IsFolder = r.IsFolder
	d.Version = r.Version
}

// --- Response DTOs ---

// DependencyResponse is the response body for a dependency.
type DependencyResponse struct {
	CatalogResponse
	Address   *string `json:"address,omitempty"`
	Manager   *string `json:"manager,omitempty"`
	IsCentral bool    `json:"isCentral"`
}

// FromDependency creates response DTO from domain entity.
func FromDependency(d *dependency.Dependency) *DependencyResponse {
	return &DependencyResponse{
		CatalogResponse: FromCatalog(d.Catalog),
		Address:         d.Address,
		Manager:         d.Manager,
		IsCentral:       d.IsCentral,
	}
}
