package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/oppstream/oppstream-backend-go/internal/domain/businessunit"
	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/domain/user"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/database"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	businessunit.BusinessUnitRepository
}

func NewEmployeeService(db *database.DB, employeeRepository employee.EmployeeRepository, businessUnitRepository businessunit.BusinessUnitRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                     db,
		EmployeeRepository:     employeeRepository,
		BusinessUnitRepository: businessUnitRepository,
	}
}

// buildAncestors conses the manager onto the manager's own materialized
// chain. An unresolvable manager yields an empty chain instead of an error,
// so a profile mid-onboarding can still be saved; flow building fails closed
// later if the chain stays incomplete.
func (s *EmployeeServiceImpl) buildAncestors(ctx context.Context, managerID *string) ([]string, error) {
	if managerID == nil || *managerID == "" {
		return []string{}, nil
	}

	manager, err := s.EmployeeRepository.GetByID(ctx, *managerID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to resolve manager: %w", err)
	}

	ancestors := make([]string, 0, len(manager.Ancestors)+1)
	ancestors = append(ancestors, manager.ID)
	ancestors = append(ancestors, manager.Ancestors...)
	return ancestors, nil
}

// Upsert implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Upsert(ctx context.Context, userID string, req employee.UpsertEmployeeRequest) (employee.EmployeeResponse, bool, error) {
	rank, err := employee.ParseRank(req.Rank)
	if err != nil {
		return employee.EmployeeResponse{}, false, err
	}

	if _, err := s.BusinessUnitRepository.GetByID(ctx, req.BusinessUnitID); err != nil {
		return employee.EmployeeResponse{}, false, err
	}

	taken, err := s.EmployeeRepository.ExistsOtherWithCodeOrEmail(ctx, userID, req.EmployeeCode, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, false, fmt.Errorf("failed to check employee uniqueness: %w", err)
	}
	if taken {
		return employee.EmployeeResponse{}, false, employee.ErrEmployeeExists
	}

	// BUH sits at the top of the hierarchy; its chain is always empty no
	// matter what manager the request carries.
	var ancestors []string
	if rank == employee.RankBUH {
		ancestors = []string{}
	} else {
		ancestors, err = s.buildAncestors(ctx, req.ManagerID)
		if err != nil {
			return employee.EmployeeResponse{}, false, err
		}
	}

	employmentType := employee.EmploymentTypeFullTime
	if req.EmploymentType != "" {
		employmentType, err = employee.ParseEmploymentType(req.EmploymentType)
		if err != nil {
			return employee.EmployeeResponse{}, false, err
		}
	}

	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	emp := employee.Employee{
		UserID:            userID,
		EmployeeCode:      req.EmployeeCode,
		Name:              req.Name,
		Email:             req.Email,
		ContactNumber:     req.ContactNumber,
		WorkLocation:      req.WorkLocation,
		EmploymentType:    employmentType,
		Rank:              rank,
		ManagerID:         req.ManagerID,
		Ancestors:         ancestors,
		BusinessUnitID:    req.BusinessUnitID,
		Department:        req.Department,
		Team:              req.Team,
		Skills:            req.Skills,
		TotalExperience:   req.TotalExperience,
		PreviousProjects:  req.PreviousProjects,
		PreviousCompanies: req.PreviousCompanies,
		CurrentProjects:   req.CurrentProjects,
		IsAvailable:       isAvailable,
		ResumeURL:         req.ResumeURL,
	}
	if req.DOB != nil && *req.DOB != "" {
		if dob, ok := validator.IsValidDate(*req.DOB); ok {
			emp.DOB = &dob
		}
	}

	stored, inserted, err := s.EmployeeRepository.Upsert(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, false, fmt.Errorf("failed to upsert employee: %w", err)
	}

	resp, err := s.hydrateResponse(ctx, stored)
	if err != nil {
		return employee.EmployeeResponse{}, false, err
	}
	return resp, inserted, nil
}

// hydrateResponse expands the stored ancestor ids into full refs and attaches
// the manager and business unit name.
func (s *EmployeeServiceImpl) hydrateResponse(ctx context.Context, emp employee.Employee) (employee.EmployeeResponse, error) {
	resp := employee.ToEmployeeResponse(emp)

	if len(emp.Ancestors) > 0 {
		refs, err := s.EmployeeRepository.GetRefsByIDs(ctx, emp.Ancestors)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hydrate ancestors: %w", err)
		}
		for _, ref := range refs {
			resp.Ancestors = append(resp.Ancestors, employee.ToEmployeeRefResponse(ref))
		}
		if emp.ManagerID != nil && len(refs) > 0 && refs[0].ID == *emp.ManagerID {
			manager := employee.ToEmployeeRefResponse(refs[0])
			resp.Manager = &manager
		}
	}

	bu, err := s.BusinessUnitRepository.GetByID(ctx, emp.BusinessUnitID)
	if err == nil {
		resp.BusinessUnitName = bu.Name
	}

	return resp, nil
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.hydrateResponse(ctx, emp)
}

// subordinatesOf resolves the raw subordinate set for the caller.
func (s *EmployeeServiceImpl) subordinatesOf(ctx context.Context, userID string, authRole user.Role) ([]employee.Employee, error) {
	if authRole == user.RoleVP {
		// A VP sees the whole organization, unscoped by business unit.
		emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return s.EmployeeRepository.ListAll(ctx)
			}
			return nil, err
		}
		return s.EmployeeRepository.ListAllExcept(ctx, emp.ID)
	}

	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch emp.Rank {
	case employee.RankBUH:
		return s.EmployeeRepository.ListByBusinessUnit(ctx, emp.BusinessUnitID, emp.ID)
	case employee.RankAM:
		return s.EmployeeRepository.ListByAncestor(ctx, emp.ID)
	case employee.RankRM:
		return s.EmployeeRepository.ListByManager(ctx, emp.ID)
	default:
		return []employee.Employee{}, nil
	}
}

// Subordinates implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Subordinates(ctx context.Context, userID string, authRole user.Role) (employee.SubordinatesResponse, error) {
	subs, err := s.subordinatesOf(ctx, userID, authRole)
	if err != nil {
		return employee.SubordinatesResponse{}, err
	}

	resp := employee.SubordinatesResponse{
		Count:     len(subs),
		Employees: make([]employee.SubordinateResponse, 0, len(subs)),
	}
	for _, sub := range subs {
		resp.Employees = append(resp.Employees, employee.ToSubordinateResponse(sub))
	}
	return resp, nil
}

// SubordinateCounts implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SubordinateCounts(ctx context.Context, userID string, authRole user.Role) (employee.SubordinateCountsResponse, error) {
	subs, err := s.subordinatesOf(ctx, userID, authRole)
	if err != nil {
		return employee.SubordinateCountsResponse{}, err
	}

	counts := employee.SubordinateCountsResponse{
		Total:  len(subs),
		ByRank: make(map[string]int),
	}
	for _, sub := range subs {
		counts.ByRank[string(sub.Rank)]++
	}
	return counts, nil
}

// Managers implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Managers(ctx context.Context, userID string, authRole user.Role) (employee.ManagersResponse, error) {
	rank, err := s.callerRank(ctx, userID, authRole)
	if err != nil {
		return employee.ManagersResponse{}, err
	}

	target, ok := rank.NextRankUp()
	if !ok {
		// Top of the hierarchy: nobody above to report to.
		return employee.ManagersResponse{Managers: []employee.ManagerResponse{}}, nil
	}

	candidates, err := s.EmployeeRepository.ListByRank(ctx, target)
	if err != nil {
		return employee.ManagersResponse{}, fmt.Errorf("failed to list managers: %w", err)
	}

	resp := employee.ManagersResponse{
		Count:    len(candidates),
		Managers: make([]employee.ManagerResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		resp.Managers = append(resp.Managers, employee.ManagerResponse{
			ID:             c.ID,
			EmployeeCode:   c.EmployeeCode,
			Name:           c.Name,
			Email:          c.Email,
			Rank:           string(c.Rank),
			BusinessUnitID: c.BusinessUnitID,
		})
	}
	return resp, nil
}

// callerRank prefers the caller's stored profile rank, falling back to the
// auth-role mapping for users who have not completed a profile yet.
func (s *EmployeeServiceImpl) callerRank(ctx context.Context, userID string, authRole user.Role) (employee.Rank, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err == nil {
		return emp.Rank, nil
	}
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.RankForRole(authRole)
	}
	return "", err
}
