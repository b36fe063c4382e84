package supplier

import (
	"context"
	"fmt"
	"time"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/core/tx"
	"almacen/internal/domain"
	"almacen/pkg/numerator"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Supplier service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "supplier",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	base.Hooks().On(domain.BeforeUpdate, svc.prepareForUpdate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Supplier) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("SUP"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return s.checkTaxID(ctx, item)
}

func (s *Service) prepareForUpdate(ctx context.Context, item *Supplier) error {
	return s.checkTaxID(ctx, item)
}

func (s *Service) checkTaxID(ctx context.Context, item *Supplier) error {
	if item.TaxID == nil || *item.TaxID == "" {
		return nil
	}
	if exists, _ := s.checkTaxIDExists(ctx, *item.TaxID, item.ID); exists {
		return apperror.NewDuplicate("supplier", "taxId", *item.TaxID)
	}
	return nil
}

func (s *Service) checkTaxIDExists(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByTaxID(ctx, taxID)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}

// FindByTaxID retrieves a supplier by tax identifier.
func (s *Service) FindByTaxID(ctx context.Context, taxID string) (*Supplier, error) {
	return s.repo.FindByTaxID(ctx, taxID)
}
