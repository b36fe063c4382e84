package annex

import (
	"context"
	"fmt"
	"time"

	"almacen/internal/core/id"
	"almacen/internal/core/tx"
	"almacen/internal/domain"
	"almacen/pkg/numerator"
)

// Service provides business logic for the Annex catalog.
type Service struct {
	*domain.CatalogService[*Annex]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Annex service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Annex]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "annex",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, item *Annex) error {
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("ANX"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}
	return nil
}

// FindByAgreement retrieves annexes of one agreement.
func (s *Service) FindByAgreement(ctx context.Context, agreementID id.ID) ([]*Annex, error) {
	return s.repo.FindByAgreement(ctx, agreementID)
}
