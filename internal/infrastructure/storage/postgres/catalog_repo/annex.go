package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/annex"
	"almacen/internal/infrastructure/storage/postgres"
)

const annexTable = "cat_annexes"

// AnnexRepo implements annex.Repository.
type AnnexRepo struct {
	*BaseCatalogRepo[*annex.Annex]
}

// NewAnnexRepo creates a new annex repository.
func NewAnnexRepo(txManager *postgres.TxManager) *AnnexRepo {
	return &AnnexRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			annexTable,
			postgres.ExtractDBColumns[annex.Annex](),
			func() *annex.Annex { return &annex.Annex{} },
		),
	}
}

// FindByAgreement retrieves annexes of one agreement.
func (r *AnnexRepo) FindByAgreement(ctx context.Context, agreementID id.ID) ([]*annex.Annex, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"agreement_id": agreementID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*annex.Annex
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("find by agreement: %w", err)
	}
	return items, nil
}
