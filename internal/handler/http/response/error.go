package response

import (
	"errors"
	"net/http"

	"github.com/oppstream/oppstream-backend-go/internal/domain/auth"
	"github.com/oppstream/oppstream-backend-go/internal/domain/businessunit"
	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/domain/log"
	"github.com/oppstream/oppstream-backend-go/internal/domain/summary"
	"github.com/oppstream/oppstream-backend-go/internal/domain/user"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrPasswordLoginOnly):
		Unauthorized(w, "This account signs in with Google")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrNothingToUpdate):
		BadRequest(w, "Nothing to update", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee profile not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, "Employee code or email already in use")
	case errors.Is(err, employee.ErrInvalidRank):
		BadRequest(w, "Invalid rank", nil)
	case errors.Is(err, employee.ErrInvalidEmploymentType):
		BadRequest(w, "Invalid employment type", nil)

	// Business unit domain errors
	case errors.Is(err, businessunit.ErrBusinessUnitNotFound):
		NotFound(w, "Business unit not found")
	case errors.Is(err, businessunit.ErrNameExists):
		Conflict(w, "Business unit name already exists")

	// Log domain errors
	case errors.Is(err, log.ErrLogNotFound):
		NotFound(w, "Log not found")
	case errors.Is(err, log.ErrInvalidRequirementType):
		BadRequest(w, "Invalid requirement type", nil)
	case errors.Is(err, log.ErrInvalidDecision):
		BadRequest(w, "Decision must be APPROVED or REJECTED", nil)
	case errors.Is(err, log.ErrApproverMissing):
		// The chain lacks an approver at a required rank; the record
		// cannot enter the approval flow.
		Conflict(w, err.Error())
	case errors.Is(err, log.ErrNotAuthorizedApprover):
		Forbidden(w, "Not an approver on this log")
	case errors.Is(err, log.ErrNotVisible):
		Forbidden(w, "Log is not visible to you")
	case errors.Is(err, log.ErrNotCreator):
		Forbidden(w, "Only the creator may resubmit this log")
	case errors.Is(err, log.ErrStepAlreadyDecided):
		Conflict(w, "Approval step already decided")
	case errors.Is(err, log.ErrStepNotReachable):
		Conflict(w, "Earlier approval steps are still pending")
	case errors.Is(err, log.ErrNoRejectedStep):
		Conflict(w, "Log has no rejected step to resubmit")
	case errors.Is(err, log.ErrRejectionReasonRequired):
		ValidationError(w, map[string]string{"reason": "rejection reason is required"})

	// Summary domain errors
	case errors.Is(err, summary.ErrNotConfigured):
		InternalServerError(w, "Summary service is not configured")
	case errors.Is(err, summary.ErrEmptyResponse), errors.Is(err, summary.ErrSummaryFailed):
		InternalServerError(w, "Failed to generate summary")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
