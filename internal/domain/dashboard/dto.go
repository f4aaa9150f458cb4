package dashboard

import (
	"github.com/oppstream/oppstream-backend-go/internal/domain/businessunit"
	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/domain/log"
)

// StatsResponse contains the headline totals for the admin dashboard
type StatsResponse struct {
	TotalEmployees     int64 `json:"total_employees"`
	TotalBusinessUnits int64 `json:"total_business_units"`
	TotalLogs          int64 `json:"total_logs"`
	AvailableEmployees int64 `json:"available_employees"`
}

// GroupCountResponse is a single bucket of a grouped employee count
type GroupCountResponse struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DistributionResponse represents employee distribution by department and team
type DistributionResponse struct {
	ByDepartment []GroupCountResponse `json:"by_department"`
	ByTeam       []GroupCountResponse `json:"by_team"`
}

// OverviewResponse is the admin landing view: the latest records of each kind
type OverviewResponse struct {
	Employees     []employee.EmployeeResponse         `json:"employees"`
	BusinessUnits []businessunit.BusinessUnitResponse `json:"business_units"`
	Logs          []log.LogResponse                   `json:"logs"`
}
