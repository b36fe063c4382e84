package agreement

import (
	"context"
	"fmt"
	"time"

	"almacen/internal/core/id"
	"almacen/internal/core/tx"
	"almacen/internal/domain"
	"almacen/pkg/numerator"
)

// Service provides business logic for the Agreement catalog.
type Service struct {
	*domain.CatalogService[*Agreement]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Agreement service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Agreement]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "agreement",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Agreement) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("AGR"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}

// FindBySupplier retrieves agreements of one supplier.
func (s *Service) FindBySupplier(ctx context.Context, supplierID id.ID) ([]*Agreement, error) {
	return s.repo.FindBySupplier(ctx, supplierID)
}
