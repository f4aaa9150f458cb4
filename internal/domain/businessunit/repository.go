package businessunit

import "context"

type BusinessUnitRepository interface {
	Create(ctx context.Context, name string) (BusinessUnit, error)
	GetByID(ctx context.Context, id string) (BusinessUnit, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]BusinessUnit, error)
	Count(ctx context.Context) (int64, error)
}
