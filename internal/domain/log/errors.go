package log

import "errors"

var (
	ErrLogNotFound             = errors.New("log not found")
	ErrInvalidRequirementType  = errors.New("invalid requirement type")
	ErrInvalidDecision         = errors.New("invalid approval status")
	ErrApproverMissing         = errors.New("no approver found for required rank")
	ErrNotAuthorizedApprover   = errors.New("not an approver for this log")
	ErrStepAlreadyDecided      = errors.New("approval step already decided")
	ErrStepNotReachable        = errors.New("previous approval steps are not yet approved")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrNotCreator              = errors.New("only the creator may resubmit this log")
	ErrNoRejectedStep          = errors.New("log has no rejected step to correct")
	ErrNotVisible              = errors.New("log is not visible to this employee")
)
