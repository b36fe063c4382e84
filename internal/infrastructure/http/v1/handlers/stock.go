package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/domain/stock"
	"almacen/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock register.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock register handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetBalances handles GET /registers/stock/balances - non-zero balances,
// optionally scoped to one dependency.
func (h *StockHandler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()

	var dependencyID *id.ID
	if depStr := c.Query("dependencyId"); depStr != "" {
		parsed, err := id.Parse(depStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid dependencyId format"))
			return
		}
		dependencyID = &parsed
	}

	balances, err := h.service.ListBalances(ctx, dependencyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromStockBalances(balances)})
}

// GetBalance handles GET /registers/stock/balances/:dependencyId/:productId -
// a single balance cell. Missing rows come back as quantity zero.
func (h *StockHandler) GetBalance(c *gin.Context) {
	ctx := c.Request.Context()

	dependencyID, err := id.Parse(c.Param("dependencyId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid dependencyId format"))
		return
	}

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	balance, err := h.service.GetBalance(ctx, dependencyID, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockBalance(balance))
}

// GetProductBalances handles GET /registers/stock/products/:productId -
// where a product is held, across all dependencies.
func (h *StockHandler) GetProductBalances(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	balances, err := h.service.GetProductBalances(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.FromStockBalances(balances)})
}

// RegisterRoutes registers stock register routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/balances", h.GetBalances)
	rg.GET("/balances/:dependencyId/:productId", h.GetBalance)
	rg.GET("/products/:productId", h.GetProductBalances)
}
