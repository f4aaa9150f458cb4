package log

import (
	"context"
	"time"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
)

type LogRepository interface {
	// Create inserts the log row and its approval steps atomically.
	Create(ctx context.Context, l Log) (Log, error)
	GetByID(ctx context.Context, id string) (Log, error)

	// ListVisibleTo returns logs whose visibility snapshot contains the
	// employee, or that the employee created.
	ListVisibleTo(ctx context.Context, employeeID string) ([]Log, error)
	ListCreatedBy(ctx context.Context, employeeID string) ([]Log, error)

	// ListForApprover returns every log holding a step bound to the approver,
	// regardless of step status.
	ListForApprover(ctx context.Context, approverID string) ([]Log, error)

	// DecideStep transitions a PENDING step to a terminal status. The WHERE
	// clause on the current status is the concurrency guard: of two racing
	// decisions exactly one sees an affected row.
	DecideStep(ctx context.Context, logID string, approverID string, rank employee.Rank, status StepStatus, reason *string, approverName string, decidedAt time.Time) (bool, error)

	// ReplaceApprovals drops every step of the log and inserts the new flow.
	ReplaceApprovals(ctx context.Context, logID string, steps []ApprovalStep) error

	// UpdatePayload replaces the mutable detail payload and the visibility
	// snapshot of a log.
	UpdatePayload(ctx context.Context, l Log) error

	Count(ctx context.Context) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]Log, error)
}
