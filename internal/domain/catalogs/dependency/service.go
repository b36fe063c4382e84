package dependency

import (
	"context"
	"fmt"
	"time"

	"almacen/internal/core/tx"
	"almacen/internal/domain"
	"almacen/pkg/numerator"
)

// Service provides business logic for the Dependency catalog.
type Service struct {
	*domain.CatalogService[*Dependency]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Dependency service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Dependency]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "dependency",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Dependency) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("DEP"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}

// FindCentral retrieves the central warehouse.
func (s *Service) FindCentral(ctx context.Context) (*Dependency, error) {
	return s.repo.FindCentral(ctx)
}
