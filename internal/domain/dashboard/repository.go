package dashboard

import "context"

// Totals combines the headline dashboard counts in a single query
type Totals struct {
	Employees          int64
	BusinessUnits      int64
	Logs               int64
	AvailableEmployees int64
}

// GroupCount is one bucket of a GROUP BY aggregation
type GroupCount struct {
	Name  string
	Count int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetTotals returns employee, business unit, log, and availability counts
	GetTotals(ctx context.Context) (*Totals, error)

	// CountEmployeesByDepartment groups employee counts by department
	CountEmployeesByDepartment(ctx context.Context) ([]GroupCount, error)

	// CountEmployeesByTeam groups employee counts by team
	CountEmployeesByTeam(ctx context.Context) ([]GroupCount, error)
}
