package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, user_id, employee_code, name, email, contact_number, dob,
	work_location, employment_type, rank, manager_id, ancestors, business_unit_id,
	department, team, skills, total_experience, previous_projects, previous_companies,
	current_projects, is_available, resume_url, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.EmployeeCode,
		&e.Name,
		&e.Email,
		&e.ContactNumber,
		&e.DOB,
		&e.WorkLocation,
		&e.EmploymentType,
		&e.Rank,
		&e.ManagerID,
		&e.Ancestors,
		&e.BusinessUnitID,
		&e.Department,
		&e.Team,
		&e.Skills,
		&e.TotalExperience,
		&e.PreviousProjects,
		&e.PreviousCompanies,
		&e.CurrentProjects,
		&e.IsAvailable,
		&e.ResumeURL,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return found, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return found, nil
}

// GetRefsByIDs implements employee.EmployeeRepository. The WITH ORDINALITY
// join keeps the refs in the same order as the input ids.
func (r *employeeRepositoryImpl) GetRefsByIDs(ctx context.Context, ids []string) ([]employee.EmployeeRef, error) {
	if len(ids) == 0 {
		return []employee.EmployeeRef{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.employee_code, e.name, e.email, e.rank
		FROM unnest($1::uuid[]) WITH ORDINALITY AS input(id, ord)
		JOIN employees e ON e.id = input.id
		ORDER BY input.ord
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []employee.EmployeeRef
	for rows.Next() {
		var ref employee.EmployeeRef
		if err := rows.Scan(&ref.ID, &ref.EmployeeCode, &ref.Name, &ref.Email, &ref.Rank); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// Upsert implements employee.EmployeeRepository. Keyed by user_id so each
// identity owns at most one profile; xmax = 0 distinguishes insert from update.
func (r *employeeRepositoryImpl) Upsert(ctx context.Context, emp employee.Employee) (employee.Employee, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, employee_code, name, email, contact_number, dob, work_location,
			employment_type, rank, manager_id, ancestors, business_unit_id, department,
			team, skills, total_experience, previous_projects, previous_companies,
			current_projects, is_available, resume_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (user_id) DO UPDATE SET
			employee_code = EXCLUDED.employee_code,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			contact_number = EXCLUDED.contact_number,
			dob = EXCLUDED.dob,
			work_location = EXCLUDED.work_location,
			employment_type = EXCLUDED.employment_type,
			rank = EXCLUDED.rank,
			manager_id = EXCLUDED.manager_id,
			ancestors = EXCLUDED.ancestors,
			business_unit_id = EXCLUDED.business_unit_id,
			department = EXCLUDED.department,
			team = EXCLUDED.team,
			skills = EXCLUDED.skills,
			total_experience = EXCLUDED.total_experience,
			previous_projects = EXCLUDED.previous_projects,
			previous_companies = EXCLUDED.previous_companies,
			current_projects = EXCLUDED.current_projects,
			is_available = EXCLUDED.is_available,
			resume_url = EXCLUDED.resume_url,
			updated_at = NOW()
		RETURNING ` + employeeColumns + `, (xmax = 0) AS inserted`

	var stored employee.Employee
	var inserted bool
	err := q.QueryRow(ctx, query,
		emp.UserID,
		emp.EmployeeCode,
		emp.Name,
		emp.Email,
		emp.ContactNumber,
		emp.DOB,
		emp.WorkLocation,
		emp.EmploymentType,
		emp.Rank,
		emp.ManagerID,
		emp.Ancestors,
		emp.BusinessUnitID,
		emp.Department,
		emp.Team,
		emp.Skills,
		emp.TotalExperience,
		emp.PreviousProjects,
		emp.PreviousCompanies,
		emp.CurrentProjects,
		emp.IsAvailable,
		emp.ResumeURL,
	).Scan(
		&stored.ID,
		&stored.UserID,
		&stored.EmployeeCode,
		&stored.Name,
		&stored.Email,
		&stored.ContactNumber,
		&stored.DOB,
		&stored.WorkLocation,
		&stored.EmploymentType,
		&stored.Rank,
		&stored.ManagerID,
		&stored.Ancestors,
		&stored.BusinessUnitID,
		&stored.Department,
		&stored.Team,
		&stored.Skills,
		&stored.TotalExperience,
		&stored.PreviousProjects,
		&stored.PreviousCompanies,
		&stored.CurrentProjects,
		&stored.IsAvailable,
		&stored.ResumeURL,
		&stored.CreatedAt,
		&stored.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return employee.Employee{}, false, err
	}

	return stored, inserted, nil
}

// ExistsOtherWithCodeOrEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsOtherWithCodeOrEmail(ctx context.Context, userID string, employeeCode string, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM employees
			WHERE (employee_code = $1 OR email = $2) AND user_id <> $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeCode, email, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListByBusinessUnit implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByBusinessUnit(ctx context.Context, businessUnitID string, excludeID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE business_unit_id = $1 AND id <> $2 ORDER BY name`

	rows, err := q.Query(ctx, query, businessUnitID, excludeID)
	if err != nil {
		return nil, err
	}
	return r.collectEmployees(rows)
}

// ListByAncestor implements employee.EmployeeRepository. Matches any
// employee whose materialized chain contains the given id.
func (r *employeeRepositoryImpl) ListByAncestor(ctx context.Context, ancestorID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ancestors @> ARRAY[$1]::uuid[] ORDER BY name`

	rows, err := q.Query(ctx, query, ancestorID)
	if err != nil {
		return nil, err
	}
	return r.collectEmployees(rows)
}

// ListByManager implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE manager_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	return r.collectEmployees(rows)
}

// ListAllExcept implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListAllExcept(ctx context.Context, excludeID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id <> $1 ORDER BY name`

	rows, err := q.Query(ctx, query, excludeID)
	if err != nil {
		return nil, err
	}
	return r.collectEmployees(rows)
}

// ListByRank implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByRank(ctx context.Context, rank employee.Rank) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE rank = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, rank)
	if err != nil {
		return nil, err
	}
	return r.collectEmployees(rows)
}

// ListByUserIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByUserIDs(ctx context.Context, userIDs []string) ([]employee.Employee, error) {
	if len(userIDs) == 0 {
		return []employee.Employee{}, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = ANY($1::uuid[])`

	rows, err := q.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	return r.collectEmployees(rows)
}

// UpdateIdentity implements employee.EmployeeRepository. Propagates email
// and rank changes from the owning user account.
func (r *employeeRepositoryImpl) UpdateIdentity(ctx context.Context, userID string, email *string, rank *employee.Rank) error {
	if email == nil && rank == nil {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET email = COALESCE($1, email),
		    rank = COALESCE($2, rank),
		    updated_at = NOW()
		WHERE user_id = $3
	`

	_, err := q.Exec(ctx, query, email, rank, userID)
	return err
}

// DeleteByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) DeleteByUserID(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM employees WHERE user_id = $1`, userID)
	return err
}

// Count implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountAvailable implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountAvailable(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_available`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListAll(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return r.collectEmployees(rows)
}

// ListRecent implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return r.collectEmployees(rows)
}
