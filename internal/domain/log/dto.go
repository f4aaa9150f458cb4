package log

import (
	"time"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/validator"
)

type TimelineRequest struct {
	ExpectedStart *string `json:"expected_start"`
	ExpectedEnd   *string `json:"expected_end"`
}

// parseTimelineDate accepts either a plain date or a full RFC3339 timestamp.
func parseTimelineDate(s string) (time.Time, bool) {
	if t, ok := validator.IsValidDate(s); ok {
		return t, true
	}
	return validator.IsValidDateTime(s)
}

type CreateLogRequest struct {
	RequirementType string           `json:"requirement_type"`
	NNDetails       *NNDetails       `json:"nn_details"`
	OppFrom         *OppFrom         `json:"opp_from"`
	OppTo           *OppTo           `json:"opp_to"`
	Timeline        *TimelineRequest `json:"timeline"`
}

func (r *CreateLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequirementType) {
		errs = append(errs, validator.ValidationError{
			Field:   "requirement_type",
			Message: "requirement_type is required",
		})
	} else if _, err := ParseRequirementType(r.RequirementType); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "requirement_type",
			Message: "requirement_type must be one of EE, EN, NN",
		})
	}

	errs = append(errs, validateTimeline(r.Timeline)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResubmitLogRequest struct {
	NNDetails *NNDetails       `json:"nn_details"`
	OppFrom   *OppFrom         `json:"opp_from"`
	OppTo     *OppTo           `json:"opp_to"`
	Timeline  *TimelineRequest `json:"timeline"`
}

func (r *ResubmitLogRequest) Validate() error {
	errs := validateTimeline(r.Timeline)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateTimeline(tl *TimelineRequest) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if tl == nil {
		return errs
	}
	if tl.ExpectedStart != nil && !validator.IsEmpty(*tl.ExpectedStart) {
		if _, ok := parseTimelineDate(*tl.ExpectedStart); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timeline.expected_start",
				Message: "expected_start must be a date (YYYY-MM-DD) or an ISO8601 timestamp",
			})
		}
	}
	if tl.ExpectedEnd != nil && !validator.IsEmpty(*tl.ExpectedEnd) {
		if _, ok := parseTimelineDate(*tl.ExpectedEnd); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timeline.expected_end",
				Message: "expected_end must be a date (YYYY-MM-DD) or an ISO8601 timestamp",
			})
		}
	}
	return errs
}

// TimelineDates resolves the request strings into concrete times. Call only
// after Validate.
func (tl *TimelineRequest) TimelineDates() (start *time.Time, end *time.Time) {
	if tl == nil {
		return nil, nil
	}
	if tl.ExpectedStart != nil {
		if t, ok := parseTimelineDate(*tl.ExpectedStart); ok {
			start = &t
		}
	}
	if tl.ExpectedEnd != nil {
		if t, ok := parseTimelineDate(*tl.ExpectedEnd); ok {
			end = &t
		}
	}
	return start, end
}

type DecisionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, err := ParseDecision(r.Status); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be APPROVED or REJECTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApprovalStepResponse struct {
	Position        int        `json:"position"`
	Rank            string     `json:"rank"`
	ApproverID      string     `json:"approver_id"`
	ApproverName    string     `json:"approver_name"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

type TimelineResponse struct {
	ExpectedStart *time.Time `json:"expected_start,omitempty"`
	ExpectedEnd   *time.Time `json:"expected_end,omitempty"`
}

type CreatorResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	Rank         string  `json:"rank"`
	Team         *string `json:"team,omitempty"`
}

type MyDecisionResponse struct {
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

type LogResponse struct {
	ID              string                 `json:"id"`
	CreatedBy       string                 `json:"created_by"`
	Creator         *CreatorResponse       `json:"creator,omitempty"`
	VisibleTo       []string               `json:"visible_to"`
	RequirementType string                 `json:"requirement_type"`
	NNDetails       *NNDetails             `json:"nn_details,omitempty"`
	OppFrom         *OppFrom               `json:"opp_from,omitempty"`
	OppTo           *OppTo                 `json:"opp_to,omitempty"`
	Timeline        TimelineResponse       `json:"timeline"`
	Approvals       []ApprovalStepResponse `json:"approvals"`
	MyDecision      *MyDecisionResponse    `json:"my_decision,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type LogListResponse struct {
	Count int           `json:"count"`
	Logs  []LogResponse `json:"logs"`
}

type ApprovalCountersResponse struct {
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}

func ToApprovalStepResponse(step ApprovalStep) ApprovalStepResponse {
	return ApprovalStepResponse{
		Position:        step.Position,
		Rank:            string(step.Rank),
		ApproverID:      step.ApproverID,
		ApproverName:    step.ApproverName,
		Status:          string(step.Status),
		RejectionReason: step.RejectionReason,
		DecidedAt:       step.DecidedAt,
	}
}

func ToLogResponse(l Log) LogResponse {
	steps := make([]ApprovalStepResponse, 0, len(l.Approvals))
	for _, step := range l.Approvals {
		steps = append(steps, ToApprovalStepResponse(step))
	}
	visibleTo := l.VisibleTo
	if visibleTo == nil {
		visibleTo = []string{}
	}
	return LogResponse{
		ID:              l.ID,
		CreatedBy:       l.CreatedBy,
		VisibleTo:       visibleTo,
		RequirementType: string(l.RequirementType),
		NNDetails:       l.NNDetails,
		OppFrom:         l.OppFrom,
		OppTo:           l.OppTo,
		Timeline: TimelineResponse{
			ExpectedStart: l.TimelineStart,
			ExpectedEnd:   l.TimelineEnd,
		},
		Approvals: steps,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func ToCreatorResponse(emp employee.Employee) *CreatorResponse {
	return &CreatorResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Rank:         string(emp.Rank),
		Team:         emp.Team,
	}
}
