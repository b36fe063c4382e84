package stock

import (
	"context"
	"fmt"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
	"almacen/internal/core/id"
	"almacen/pkg/logger"
)

// ApplyInput describes one stock effect to record.
type ApplyInput struct {
	RecorderID   id.ID
	RecorderType string
	Period       time.Time
	DependencyID id.ID
	ProductID    id.ID
	// ProductName is used in the insufficient-stock message.
	ProductName string
	// Quantity is always positive; RecordType gives the direction.
	Quantity   int64
	RecordType entity.RecordType
}

// Service applies movement effects to the stock register.
type Service struct {
	repo Repository
}

// NewService creates a stock service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Apply records one stock effect. For expenses the balance row is
// locked and checked first, so two concurrent confirmations cannot
// overdraw the same product. Must run inside a transaction.
func (s *Service) Apply(ctx context.Context, in ApplyInput) error {
	if in.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}

	delta := in.Quantity
	if in.RecordType == entity.RecordTypeExpense {
		balance, err := s.repo.GetBalanceForUpdate(ctx, in.DependencyID, in.ProductID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}
		if balance.Quantity < in.Quantity {
			return apperror.NewInsufficientStock(in.ProductName, balance.Quantity, in.Quantity)
		}
		delta = -in.Quantity
	}

	if err := s.repo.ApplyDelta(ctx, in.DependencyID, in.ProductID, delta, in.Period); err != nil {
		return fmt.Errorf("apply delta: %w", err)
	}

	entry := entity.NewStockEntry(
		in.RecorderID,
		in.RecorderType,
		in.Period,
		in.RecordType,
		in.DependencyID,
		in.ProductID,
		in.Quantity,
	)
	if err := s.repo.InsertEntries(ctx, []entity.StockEntry{entry}); err != nil {
		return fmt.Errorf("insert entries: %w", err)
	}

	logger.Debug(ctx, "stock applied",
		"recorder_id", in.RecorderID,
		"product_id", in.ProductID,
		"delta", delta)

	return nil
}

// GetBalance returns the current balance for a dimension pair.
func (s *Service) GetBalance(ctx context.Context, dependencyID, productID id.ID) (entity.StockBalance, error) {
	return s.repo.GetBalance(ctx, dependencyID, productID)
}

// ListBalances returns non-zero balances, optionally scoped to a dependency.
func (s *Service) ListBalances(ctx context.Context, dependencyID *id.ID) ([]entity.StockBalance, error) {
	return s.repo.ListBalances(ctx, dependencyID)
}

// GetProductBalances returns per-dependency balances of one product.
func (s *Service) GetProductBalances(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	return s.repo.GetProductBalances(ctx, productID)
}
