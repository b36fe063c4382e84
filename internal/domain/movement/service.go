package movement

import (
	"context"
	"fmt"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
	"almacen/internal/core/id"
	"almacen/internal/core/tx"
	"almacen/internal/domain"
	"almacen/internal/domain/stock"
	"almacen/pkg/logger"
	"almacen/pkg/numerator"
)

// CatalogInfo resolves catalog codes and names needed by movements:
// the composed reception code and the product name in stock errors.
type CatalogInfo interface {
	ProductInfo(ctx context.Context, productID id.ID) (code, name string, err error)
	SupplierCode(ctx context.Context, supplierID id.ID) (string, error)
	AgreementCode(ctx context.Context, agreementID id.ID) (string, error)
	AnnexCode(ctx context.Context, annexID id.ID) (string, error)
}

// Service provides business operations for movements.
type Service struct {
	repo      Repository
	stock     *stock.Service
	catalogs  CatalogInfo
	numerator *numerator.Service
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Movement]
}

// NewService creates a movement service.
func NewService(
	repo Repository,
	stockSvc *stock.Service,
	catalogs CatalogInfo,
	num *numerator.Service,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		stock:     stockSvc,
		catalogs:  catalogs,
		numerator: num,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Movement](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Movement] {
	return s.hooks
}

// CreateFromDraft validates the draft and persists a pending movement.
func (s *Service) CreateFromDraft(ctx context.Context, draft Draft) (*Movement, error) {
	m, err := draft.Build()
	if err != nil {
		return nil, err
	}

	if err := s.hooks.Run(ctx, domain.BeforeCreate, m); err != nil {
		return nil, err
	}

	if m.Number == "" {
		cfg := numerator.DefaultConfig("MOV")
		number, err := s.numerator.GetNextNumber(ctx, cfg, nil, m.Date)
		if err != nil {
			return nil, fmt.Errorf("generate number: %w", err)
		}
		m.Number = number
	}

	if m.Type == TypeRecepcion {
		code, err := s.composeReceptionCode(ctx, m)
		if err != nil {
			return nil, err
		}
		m.Code = code
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	if err := s.hooks.Run(ctx, domain.AfterCreate, m); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "movement created",
		"id", m.ID,
		"number", m.Number,
		"type", m.Type)

	return m, nil
}

// composeReceptionCode builds year-supplier-agreement-annex-product
// from the referenced catalog codes.
func (s *Service) composeReceptionCode(ctx context.Context, m *Movement) (string, error) {
	productCode, _, err := s.catalogs.ProductInfo(ctx, m.ProductID)
	if err != nil {
		return "", fmt.Errorf("resolve product: %w", err)
	}
	supplierCode, err := s.catalogs.SupplierCode(ctx, m.SupplierID)
	if err != nil {
		return "", fmt.Errorf("resolve supplier: %w", err)
	}
	agreementCode, err := s.catalogs.AgreementCode(ctx, m.AgreementID)
	if err != nil {
		return "", fmt.Errorf("resolve agreement: %w", err)
	}
	annexCode, err := s.catalogs.AnnexCode(ctx, m.AnnexID)
	if err != nil {
		return "", fmt.Errorf("resolve annex: %w", err)
	}

	return fmt.Sprintf("%d-%s-%s-%s-%s",
		m.Date.Year(), supplierCode, agreementCode, annexCode, productCode), nil
}

// CreateAdjustment splits part of a confirmed reception's quantity
// across other dependencies. The available quantity is recomputed with
// the source row locked, so concurrent splits cannot oversubscribe it.
func (s *Service) CreateAdjustment(ctx context.Context, req AdjustmentRequest) ([]*Movement, error) {
	if id.IsNil(req.SourceMovementID) {
		return nil, apperror.NewValidation("source movement is required").
			WithDetail("field", "sourceMovementId")
	}

	var legs []*Movement
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		source, err := s.repo.GetByIDForUpdate(ctx, req.SourceMovementID)
		if err != nil {
			return err
		}

		if source.Type != TypeRecepcion {
			return apperror.NewBusinessRule(
				apperror.CodeBusinessRule,
				"only receptions can be split",
			).WithDetail("movement_id", source.ID.String()).
				WithDetail("type", string(source.Type))
		}
		if !source.IsConfirmed() {
			return apperror.NewBusinessRule(
				apperror.CodeBusinessRule,
				"only confirmed receptions can be split",
			).WithDetail("movement_id", source.ID.String())
		}

		adjusted, err := s.repo.SumAdjustedQuantity(ctx, source.ID)
		if err != nil {
			return fmt.Errorf("sum adjusted: %w", err)
		}
		remaining := source.Quantity - adjusted

		if err := ValidateSplit(source, remaining, req); err != nil {
			return err
		}

		legs = BuildLegs(source, req)
		for _, leg := range legs {
			if err := s.hooks.Run(ctx, domain.BeforeCreate, leg); err != nil {
				return err
			}
			if leg.Number == "" {
				cfg := numerator.DefaultConfig("MOV")
				number, err := s.numerator.GetNextNumber(ctx, cfg, nil, leg.Date)
				if err != nil {
					return fmt.Errorf("generate number: %w", err)
				}
				leg.Number = number
			}
			if err := s.repo.Create(ctx, leg); err != nil {
				return fmt.Errorf("create leg: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, leg := range legs {
		if err := s.hooks.Run(ctx, domain.AfterCreate, leg); err != nil {
			logger.Warn(ctx, "after-create hook failed", "id", leg.ID, "error", err)
		}
	}

	logger.Info(ctx, "adjustment created",
		"source_id", req.SourceMovementID,
		"legs", len(legs))

	return legs, nil
}

// Confirm applies a pending movement to stock and marks it CONFIRMADO.
// For exit types the balance is checked under lock; on insufficient
// stock the movement stays pending so the caller can delete it.
func (s *Service) Confirm(ctx context.Context, movementID id.ID) (*Movement, error) {
	var confirmed *Movement
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		m, err := s.repo.GetByIDForUpdate(ctx, movementID)
		if err != nil {
			return err
		}

		if m.IsConfirmed() {
			return apperror.NewBusinessRule(
				apperror.CodeMovementConfirmed,
				"movement is already confirmed",
			).WithDetail("movement_id", m.ID.String())
		}

		factor, err := m.Factor()
		if err != nil {
			return err
		}
		recordType := entity.RecordTypeReceipt
		if factor < 0 {
			recordType = entity.RecordTypeExpense
		}

		_, productName, err := s.catalogs.ProductInfo(ctx, m.ProductID)
		if err != nil {
			return fmt.Errorf("resolve product: %w", err)
		}

		if err := s.stock.Apply(ctx, stock.ApplyInput{
			RecorderID:   m.ID,
			RecorderType: string(m.Type),
			Period:       m.Date,
			DependencyID: m.DependencyID,
			ProductID:    m.ProductID,
			ProductName:  productName,
			Quantity:     m.Quantity,
			RecordType:   recordType,
		}); err != nil {
			return err
		}

		if err := m.MarkConfirmed(time.Now().UTC()); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, m); err != nil {
			return fmt.Errorf("update movement: %w", err)
		}

		confirmed = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.hooks.Run(ctx, domain.AfterUpdate, confirmed); err != nil {
		logger.Warn(ctx, "after-confirm hook failed", "id", confirmed.ID, "error", err)
	}

	logger.Info(ctx, "movement confirmed",
		"id", confirmed.ID,
		"type", confirmed.Type,
		"quantity", confirmed.Quantity)

	return confirmed, nil
}

// Delete removes a pending movement. Confirmed movements are rejected:
// their stock effect is already recorded. Deleting twice yields
// NotFound, which callers may treat as success.
func (s *Service) Delete(ctx context.Context, movementID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		m, err := s.repo.GetByIDForUpdate(ctx, movementID)
		if err != nil {
			return err
		}

		if err := m.CanModify(); err != nil {
			return err
		}

		if err := s.hooks.Run(ctx, domain.BeforeDelete, m); err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, movementID); err != nil {
			return err
		}

		logger.Info(ctx, "movement deleted", "id", movementID)
		return nil
	})
}

// GetByID retrieves a movement.
func (s *Service) GetByID(ctx context.Context, movementID id.ID) (*Movement, error) {
	return s.repo.GetByID(ctx, movementID)
}

// List retrieves movements newest-first.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error) {
	return s.repo.List(ctx, filter)
}

// ListPending retrieves pending movements newest-first.
func (s *Service) ListPending(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error) {
	return s.repo.ListPending(ctx, filter)
}

// ListReceptionsInStock retrieves confirmed receptions with quantity
// still available to split.
func (s *Service) ListReceptionsInStock(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error) {
	return s.repo.ListReceptionsInStock(ctx, filter)
}

// Remaining returns the quantity of a reception not yet redistributed.
func (s *Service) Remaining(ctx context.Context, sourceID id.ID) (int64, error) {
	source, err := s.repo.GetByID(ctx, sourceID)
	if err != nil {
		return 0, err
	}
	adjusted, err := s.repo.SumAdjustedQuantity(ctx, sourceID)
	if err != nil {
		return 0, err
	}
	return source.Quantity - adjusted, nil
}
