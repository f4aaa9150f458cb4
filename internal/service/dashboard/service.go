package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/oppstream/oppstream-backend-go/internal/domain/businessunit"
	"github.com/oppstream/oppstream-backend-go/internal/domain/dashboard"
	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/domain/log"
)

// recentLimit caps the per-kind rows on the admin overview
const recentLimit = 5

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employeeRepo     employee.EmployeeRepository
	businessUnitRepo businessunit.BusinessUnitRepository
	logRepo          log.LogRepository
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	employeeRepo employee.EmployeeRepository,
	businessUnitRepo businessunit.BusinessUnitRepository,
	logRepo log.LogRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		employeeRepo:        employeeRepo,
		businessUnitRepo:    businessUnitRepo,
		logRepo:             logRepo,
	}
}

// GetStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (*dashboard.StatsResponse, error) {
	totals, err := s.DashboardRepository.GetTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &dashboard.StatsResponse{
		TotalEmployees:     totals.Employees,
		TotalBusinessUnits: totals.BusinessUnits,
		TotalLogs:          totals.Logs,
		AvailableEmployees: totals.AvailableEmployees,
	}, nil
}

// GetDistribution implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDistribution(ctx context.Context) (*dashboard.DistributionResponse, error) {
	var byDepartment, byTeam []dashboard.GroupCount

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		byDepartment, err = s.DashboardRepository.CountEmployeesByDepartment(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		byTeam, err = s.DashboardRepository.CountEmployeesByTeam(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DistributionResponse{
		ByDepartment: toGroupCountResponses(byDepartment),
		ByTeam:       toGroupCountResponses(byTeam),
	}, nil
}

// GetOverview implements dashboard.DashboardService using parallel goroutines,
// one query per kind.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context) (*dashboard.OverviewResponse, error) {
	var (
		employees     []employee.Employee
		businessUnits []businessunit.BusinessUnit
		logs          []log.Log
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.ListRecent(gCtx, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		businessUnits, err = s.businessUnitRepo.List(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.logRepo.ListRecent(gCtx, recentLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dashboard.OverviewResponse{
		Employees:     make([]employee.EmployeeResponse, 0, len(employees)),
		BusinessUnits: make([]businessunit.BusinessUnitResponse, 0, len(businessUnits)),
		Logs:          make([]log.LogResponse, 0, len(logs)),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, employee.ToEmployeeResponse(emp))
	}
	for _, bu := range businessUnits {
		resp.BusinessUnits = append(resp.BusinessUnits, businessunit.ToBusinessUnitResponse(bu))
	}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, log.ToLogResponse(l))
	}
	return resp, nil
}

func toGroupCountResponses(counts []dashboard.GroupCount) []dashboard.GroupCountResponse {
	responses := make([]dashboard.GroupCountResponse, 0, len(counts))
	for _, c := range counts {
		responses = append(responses, dashboard.GroupCountResponse{
			Name:  c.Name,
			Count: c.Count,
		})
	}
	return responses
}
