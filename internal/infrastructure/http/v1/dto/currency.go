package dto

import (
	"almacen/internal/domain/catalogs/currency"
)

// --- Request DTOs ---

// CreateCurrencyRequest is the request body for creating a currency.
type CreateCurrencyRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	ISOCode       *string `json:"isoCode" binding:"required"`
	Symbol        *string `json:"symbol" binding:"required"`
	DecimalPlaces int     `json:"decimalPlaces"`
	IsBase        bool    `json:"isBase"`
	ParentID      *string `json:"parentId"`
	IsFolder      bool    `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCurrencyRequest) ToEntity() *currency.Currency {
	c := currency.NewCurrency(r.Code, r.Name, r.ISOCode, r.Symbol)
	if r.DecimalPlaces > 0 {
		c.DecimalPlaces = r.DecimalPlaces
	}
	c.IsBase = r.IsBase
	c.ParentID = r.ParentID
	c.IsFolder = r.IsFolder
	return c
}

// UpdateCurrencyRequest is the request body for updating a currency.
type UpdateCurrencyRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	ISOCode       *string `json:"isoCode" binding:"required"`
	Symbol        *string `json:"symbol" binding:"required"`
	DecimalPlaces int     `json:"decimalPlaces"`
	IsBase        bool    `json:"isBase"`
	ParentID      *string `json:"parentId"`
	IsFolder      bool    `json:"isFolder"`
	Version       int     `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCurrencyRequest) ApplyTo(c *currency.Currency) {
	c.Code = r.Code
	c.Name = r.Name
	c.ISOCode = r.ISOCode
	c.Symbol = r.Symbol
	c.DecimalPlaces = r.DecimalPlaces
	c.IsBase = r.IsBase
	c.ParentID = r.ParentID
	c.IsFolder = r.IsFolder
	c.Version = r.Version
}

// --- Response DTOs ---

// CurrencyResponse is the response body for a currency.
type CurrencyResponse struct {
	CatalogResponse
	ISOCode       *string `json:"isoCode"`
	Symbol        *string `json:"symbol"`
	DecimalPlaces int     `json:"decimalPlaces"`
	IsBase        bool    `json:"isBase"`
}

// FromCurrency creates response DTO from domain entity.
func FromCurrency(c *currency.Currency) *CurrencyResponse {
	return &CurrencyResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		ISOCode:         c.ISOCode,
		Symbol:          c.Symbol,
		DecimalPlaces:   c.DecimalPlaces,
		IsBase:          c.IsBase,
	}
}
