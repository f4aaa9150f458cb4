package businessunit

import (
	"context"
	"fmt"

	"github.com/oppstream/oppstream-backend-go/internal/domain/businessunit"
)

type BusinessUnitServiceImpl struct {
	businessunit.BusinessUnitRepository
}

func NewBusinessUnitService(repo businessunit.BusinessUnitRepository) businessunit.BusinessUnitService {
	return &BusinessUnitServiceImpl{
		BusinessUnitRepository: repo,
	}
}

// Create implements businessunit.BusinessUnitService.
func (s *BusinessUnitServiceImpl) Create(ctx context.Context, req businessunit.CreateBusinessUnitRequest) (businessunit.BusinessUnitResponse, error) {
	exists, err := s.BusinessUnitRepository.ExistsByName(ctx, req.Name)
	if err != nil {
		return businessunit.BusinessUnitResponse{}, fmt.Errorf("failed to check business unit name: %w", err)
	}
	if exists {
		return businessunit.BusinessUnitResponse{}, businessunit.ErrNameExists
	}

	bu, err := s.BusinessUnitRepository.Create(ctx, req.Name)
	if err != nil {
		return businessunit.BusinessUnitResponse{}, fmt.Errorf("failed to create business unit: %w", err)
	}
	return businessunit.ToBusinessUnitResponse(bu), nil
}

// List implements businessunit.BusinessUnitService.
func (s *BusinessUnitServiceImpl) List(ctx context.Context) ([]businessunit.BusinessUnitResponse, error) {
	units, err := s.BusinessUnitRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list business units: %w", err)
	}

	responses := make([]businessunit.BusinessUnitResponse, 0, len(units))
	for _, bu := range units {
		responses = append(responses, businessunit.ToBusinessUnitResponse(bu))
	}
	return responses, nil
}
