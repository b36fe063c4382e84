package dto

import (
	"almacen/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	Unit        *string `json:"unit"`
	Perishable  bool    `json:"perishable"`
	MinStock    int64   `json:"minStock"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	IsFolder    bool    `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name)
	p.Unit = r.Unit
	p.Perishable = r.Perishable
	p.MinStock = r.MinStock
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	return p
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code        string  `json:"code"`
	Name        string  `json:"name" binding:"required"`
	Unit        *string `json:"unit"`
	Perishable  bool    `json:"perishable"`
	MinStock    int64   `json:"minStock"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
	IsFolder    bool    `json:"isFolder"`
	Version     int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.Unit = r.Unit
	p.Perishable = r.Perishable
	p.MinStock = r.MinStock
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	Unit        *string `json:"unit,omitempty"`
	Perishable  bool    `json:"perishable"`
	MinStock    int64   `json:"minStock"`
	Description *string `json:"description,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Unit:            p.Unit,
		Perishable:      p.Perishable,
		MinStock:        p.MinStock,
		Description:     p.Description,
	}
}
