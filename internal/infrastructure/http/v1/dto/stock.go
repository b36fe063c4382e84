package dto

import (
	"time"

	"almacen/internal/core/entity"
)

// --- Response DTOs for the stock register ---

// StockBalanceResponse represents a stock balance in API responses.
type StockBalanceResponse struct {
	DependencyID   string     `json:"dependencyId"`
	ProductID      string     `json:"productId"`
	Quantity       int64      `json:"quantity"`
	LastMovementAt *time.Time `json:"lastMovementAt,omitempty"`
}

// FromStockBalance converts entity to response DTO. A zero-value
// LastMovementAt becomes null instead of "0001-01-01".
func FromStockBalance(b entity.StockBalance) StockBalanceResponse {
	var lastMovement *time.Time
	if !b.LastMovementAt.IsZero() {
		val := b.LastMovementAt
		lastMovement = &val
	}

	return StockBalanceResponse{
		DependencyID:   b.DependencyID.String(),
		ProductID:      b.ProductID.String(),
		Quantity:       b.Quantity,
		LastMovementAt: lastMovement,
	}
}

// FromStockBalances converts a slice of balances.
func FromStockBalances(items []entity.StockBalance) []StockBalanceResponse {
	out := make([]StockBalanceResponse, 0, len(items))
	for _, b := range items {
		out = append(out, FromStockBalance(b))
	}
	return out
}
