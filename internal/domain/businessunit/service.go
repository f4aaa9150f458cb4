package businessunit

import "context"

type BusinessUnitService interface {
	// Create adds a business unit; duplicate names are rejected.
	Create(ctx context.Context, req CreateBusinessUnitRequest) (BusinessUnitResponse, error)
	List(ctx context.Context) ([]BusinessUnitResponse, error)
}
