package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/agreement"
	"almacen/internal/infrastructure/storage/postgres"
)

const agreementTable = "cat_agreements"

// AgreementRepo implements agreement.Repository.
type AgreementRepo struct {
	*BaseCatalogRepo[*agreement.Agreement]
}

// NewAgreementRepo creates a new agreement repository.
func NewAgreementRepo(txManager *postgres.TxManager) *AgreementRepo {
	return &AgreementRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			agreementTable,
			postgres.ExtractDBColumns[agreement.Agreement](),
			func() *agreement.Agreement { return &agreement.Agreement{} },
		),
	}
}

// FindBySupplier retrieves agreements of one supplier.
func (r *AgreementRepo) FindBySupplier(ctx context.Context, supplierID id.ID) ([]*agreement.Agreement, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"supplier_id": supplierID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("start_date DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*agreement.Agreement
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("find by supplier: %w", err)
	}
	return items, nil
}
