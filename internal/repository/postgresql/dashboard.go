package postgresql

import (
	"context"

	"github.com/oppstream/oppstream-backend-go/internal/domain/dashboard"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetTotals implements dashboard.DashboardRepository in a single round trip.
func (r *dashboardRepositoryImpl) GetTotals(ctx context.Context) (*dashboard.Totals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees) AS employees,
			(SELECT COUNT(*) FROM business_units) AS business_units,
			(SELECT COUNT(*) FROM logs) AS logs,
			(SELECT COUNT(*) FROM employees WHERE is_available) AS available_employees
	`

	var totals dashboard.Totals
	err := q.QueryRow(ctx, query).Scan(
		&totals.Employees,
		&totals.BusinessUnits,
		&totals.Logs,
		&totals.AvailableEmployees,
	)
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

func (r *dashboardRepositoryImpl) countGrouped(ctx context.Context, column string) ([]dashboard.GroupCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(` + column + `, 'Unassigned') AS name, COUNT(*) AS count
		FROM employees
		GROUP BY 1
		ORDER BY count DESC, name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []dashboard.GroupCount
	for rows.Next() {
		var g dashboard.GroupCount
		if err := rows.Scan(&g.Name, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

// CountEmployeesByDepartment implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEmployeesByDepartment(ctx context.Context) ([]dashboard.GroupCount, error) {
	return r.countGrouped(ctx, "department")
}

// CountEmployeesByTeam implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountEmployeesByTeam(ctx context.Context) ([]dashboard.GroupCount, error) {
	return r.countGrouped(ctx, "team")
}
