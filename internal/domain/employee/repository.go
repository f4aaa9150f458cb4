package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	// GetRefsByIDs hydrates employee references preserving the order of ids.
	// IDs that no longer resolve are skipped.
	GetRefsByIDs(ctx context.Context, ids []string) ([]EmployeeRef, error)
	// Upsert creates or replaces the employee profile keyed by user id.
	// Returns the stored row and whether a new row was inserted.
	Upsert(ctx context.Context, emp Employee) (Employee, bool, error)
	// ExistsOtherWithCodeOrEmail reports whether another user already owns an
	// employee row with the given code or email.
	ExistsOtherWithCodeOrEmail(ctx context.Context, userID string, employeeCode string, email string) (bool, error)
	ListByBusinessUnit(ctx context.Context, businessUnitID string, excludeID string) ([]Employee, error)
	ListByAncestor(ctx context.Context, ancestorID string) ([]Employee, error)
	ListByManager(ctx context.Context, managerID string) ([]Employee, error)
	ListAllExcept(ctx context.Context, excludeID string) ([]Employee, error)
	ListByRank(ctx context.Context, rank Rank) ([]Employee, error)
	ListByUserIDs(ctx context.Context, userIDs []string) ([]Employee, error)
	UpdateIdentity(ctx context.Context, userID string, email *string, rank *Rank) error
	DeleteByUserID(ctx context.Context, userID string) error
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]Employee, error)
	ListRecent(ctx context.Context, limit int) ([]Employee, error)
}
