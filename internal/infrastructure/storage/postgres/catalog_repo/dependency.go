package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"almacen/internal/core/apperror"
	"almacen/internal/domain/catalogs/dependency"
	"almacen/internal/infrastructure/storage/postgres"
)

const dependencyTable = "cat_dependencies"

// DependencyRepo implements dependency.Repository.
type DependencyRepo struct {
	*BaseCatalogRepo[*dependency.Dependency]
}

// NewDependencyRepo creates a new dependency repository.
func NewDependencyRepo(txManager *postgres.TxManager) *DependencyRepo {
	return &DependencyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			dependencyTable,
			postgres.ExtractDBColumns[dependency.Dependency](),
			func() *dependency.Dependency { return &dependency.Dependency{} },
		),
	}
}

// FindCentral retrieves the central warehouse.
func (r *DependencyRepo) FindCentral(ctx context.Context) (*dependency.Dependency, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"is_central": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("dependency", "central")
		}
		return nil, err
	}
	return item, nil
}
