package employee

import (
	"context"

	"github.com/oppstream/oppstream-backend-go/internal/domain/user"
)

// EmployeeService defines business logic for the hierarchy side of the system.
type EmployeeService interface {
	// Upsert creates or replaces the caller's employee profile. The ancestor
	// chain is recomputed from the manager's materialized chain on every call.
	Upsert(ctx context.Context, userID string, req UpsertEmployeeRequest) (EmployeeResponse, bool, error)

	// GetProfile returns the caller's own profile with hydrated manager,
	// ancestors, and business unit.
	GetProfile(ctx context.Context, userID string) (EmployeeResponse, error)

	// Subordinates lists the employees below the caller, scoped by rank:
	// BUH sees its business unit, AM sees its subtree, RM sees direct
	// reports, EMP sees nobody. A VP auth role sees everyone.
	Subordinates(ctx context.Context, userID string, authRole user.Role) (SubordinatesResponse, error)

	// SubordinateCounts groups the subordinate listing by rank.
	SubordinateCounts(ctx context.Context, userID string, authRole user.Role) (SubordinateCountsResponse, error)

	// Managers lists candidate approvers one rank above the caller.
	Managers(ctx context.Context, userID string, authRole user.Role) (ManagersResponse, error)
}
