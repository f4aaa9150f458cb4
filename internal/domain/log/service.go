package log

import (
	"context"
)

// LogService governs the approval lifecycle of opportunity records.
type LogService interface {
	// Create builds the approval flow and visibility snapshot from the
	// caller's current ancestor chain and persists the record.
	Create(ctx context.Context, userID string, req CreateLogRequest) (LogResponse, error)

	// GetByID fetches a single record; the caller must be its creator, in
	// its visibility snapshot, or one of its bound approvers.
	GetByID(ctx context.Context, userID string, logID string) (LogResponse, error)

	// VisibleToMe lists records the caller may see: snapshot membership or
	// authorship.
	VisibleToMe(ctx context.Context, userID string) (LogListResponse, error)

	// CreatedByMe lists the caller's own records.
	CreatedByMe(ctx context.Context, userID string) (LogListResponse, error)

	// PendingForMe lists records whose current actionable step is bound to
	// the caller, under sequential gating.
	PendingForMe(ctx context.Context, userID string) (LogListResponse, error)

	// DecidedByMe lists records the caller has already decided, annotated
	// with the caller's own decision.
	DecidedByMe(ctx context.Context, userID string) (LogListResponse, error)

	// Decide applies an APPROVED/REJECTED outcome to the caller's step.
	Decide(ctx context.Context, userID string, logID string, req DecisionRequest) (LogResponse, error)

	// Resubmit replaces a rejected record's payload and regenerates the
	// approval flow from the creator's current chain.
	Resubmit(ctx context.Context, userID string, logID string, req ResubmitLogRequest) (LogResponse, error)

	// ApprovalCounters counts the caller's steps by status; PENDING counts
	// only steps that are actually reachable under gating.
	ApprovalCounters(ctx context.Context, userID string) (ApprovalCountersResponse, error)
}
