package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/oppstream/oppstream-backend-go/internal/domain/businessunit"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/database"
)

type businessUnitRepositoryImpl struct {
	db *database.DB
}

func NewBusinessUnitRepository(db *database.DB) businessunit.BusinessUnitRepository {
	return &businessUnitRepositoryImpl{db: db}
}

// Create implements businessunit.BusinessUnitRepository.
func (r *businessUnitRepositoryImpl) Create(ctx context.Context, name string) (businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO business_units (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	var bu businessunit.BusinessUnit
	err := q.QueryRow(ctx, query, name).Scan(&bu.ID, &bu.Name, &bu.CreatedAt, &bu.UpdatedAt)
	if err != nil {
		return businessunit.BusinessUnit{}, err
	}

	return bu, nil
}

// GetByID implements businessunit.BusinessUnitRepository.
func (r *businessUnitRepositoryImpl) GetByID(ctx context.Context, id string) (businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM business_units WHERE id = $1`

	var bu businessunit.BusinessUnit
	err := q.QueryRow(ctx, query, id).Scan(&bu.ID, &bu.Name, &bu.CreatedAt, &bu.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return businessunit.BusinessUnit{}, businessunit.ErrBusinessUnitNotFound
		}
		return businessunit.BusinessUnit{}, err
	}

	return bu, nil
}

// ExistsByName implements businessunit.BusinessUnitRepository.
func (r *businessUnitRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM business_units WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List implements businessunit.BusinessUnitRepository.
func (r *businessUnitRepositoryImpl) List(ctx context.Context) ([]businessunit.BusinessUnit, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM business_units ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []businessunit.BusinessUnit
	for rows.Next() {
		var bu businessunit.BusinessUnit
		if err := rows.Scan(&bu.ID, &bu.Name, &bu.CreatedAt, &bu.UpdatedAt); err != nil {
			return nil, err
		}
		units = append(units, bu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return units, nil
}

// Count implements businessunit.BusinessUnitRepository.
func (r *businessUnitRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM business_units`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
