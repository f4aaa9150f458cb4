package log

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
)

// Log is an opportunity record flowing through the approval chain.
type Log struct {
	ID              string
	CreatedBy       string
	VisibleTo       []string
	RequirementType RequirementType
	NNDetails       *NNDetails
	OppFrom         *OppFrom
	OppTo           *OppTo
	TimelineStart   *time.Time
	TimelineEnd     *time.Time
	Approvals       []ApprovalStep
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApprovalStep is one required sign-off, bound at creation time to a
// specific rank and a specific approver. Position fixes the escalation
// order; it never changes after the flow is built.
type ApprovalStep struct {
	ID              string
	LogID           string
	Position        int
	Rank            employee.Rank
	ApproverID      string
	ApproverName    string
	Status          StepStatus
	RejectionReason *string
	DecidedAt       *time.Time
}

type StepStatus string

const (
	StepPending  StepStatus = "PENDING"
	StepApproved StepStatus = "APPROVED"
	StepRejected StepStatus = "REJECTED"
)

// ParseDecision accepts the two terminal statuses a decision may set.
func ParseDecision(s string) (StepStatus, error) {
	switch StepStatus(s) {
	case StepApproved, StepRejected:
		return StepStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDecision, s)
	}
}

type RequirementType string

const (
	RequirementEE RequirementType = "EE"
	RequirementEN RequirementType = "EN"
	RequirementNN RequirementType = "NN"
)

func ParseRequirementType(s string) (RequirementType, error) {
	switch RequirementType(s) {
	case RequirementEE, RequirementEN, RequirementNN:
		return RequirementType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRequirementType, s)
	}
}

// CurrentStep returns the first non-terminal step in escalation order,
// or false when every step is decided (or a rejection blocks the chain).
func (l *Log) CurrentStep() (ApprovalStep, bool) {
	for _, step := range l.Approvals {
		if step.Status == StepRejected {
			return ApprovalStep{}, false
		}
		if step.Status == StepPending {
			return step, true
		}
	}
	return ApprovalStep{}, false
}

// StepReachable reports whether every step before position is APPROVED,
// i.e. the step at position is eligible to be decided.
func (l *Log) StepReachable(position int) bool {
	for _, step := range l.Approvals {
		if step.Position < position && step.Status != StepApproved {
			return false
		}
	}
	return true
}

// StepForApprover finds the step bound to the given approver at the given
// rank. Both must match; a caller holding a step at another rank is not
// authorized for this one.
func (l *Log) StepForApprover(approverID string, rank employee.Rank) (ApprovalStep, bool) {
	for _, step := range l.Approvals {
		if step.ApproverID == approverID && step.Rank == rank {
			return step, true
		}
	}
	return ApprovalStep{}, false
}

// HasRejectedStep reports whether any step is in a REJECTED state.
func (l *Log) HasRejectedStep() bool {
	for _, step := range l.Approvals {
		if step.Status == StepRejected {
			return true
		}
	}
	return false
}

// NNDetails is the detail block for NN records, stored as JSONB.
type NNDetails struct {
	Description string `json:"description,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
	Source      string `json:"source,omitempty"`
	OppFrom     string `json:"opp_from,omitempty"`
}

// OppFrom is the opportunity-source block for EE/EN records, stored as JSONB.
type OppFrom struct {
	ProjectName       string     `json:"project_name,omitempty"`
	ClientName        string     `json:"client_name,omitempty"`
	ProjectCode       string     `json:"project_code,omitempty"`
	Urgency           string     `json:"urgency,omitempty"`
	MeetingType       string     `json:"meeting_type,omitempty"`
	MeetingDate       *time.Time `json:"meeting_date,omitempty"`
	MeetingScreenshot string     `json:"meeting_screenshot,omitempty"`
	PeoplePresent     []Person   `json:"people_present,omitempty"`
}

type Person struct {
	Name string `json:"name"`
}

// OppTo is the opportunity-target block, kept for every requirement type.
type OppTo struct {
	TechnologyRequired []string  `json:"technology_required,omitempty"`
	TechRows           []TechRow `json:"tech_rows,omitempty"`
	TotalPersons       int       `json:"total_persons,omitempty"`
	Category           string    `json:"category,omitempty"`
	ShortDescription   string    `json:"short_description,omitempty"`
	DetailedNotes      string    `json:"detailed_notes,omitempty"`
}

type TechRow struct {
	Technology string `json:"technology"`
	Count      int    `json:"count"`
}

// Value implements driver.Valuer for database storage
func (n NNDetails) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements sql.Scanner for database retrieval
func (n *NNDetails) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan NNDetails: invalid type")
	}
	return json.Unmarshal(bytes, n)
}

// Value implements driver.Valuer for database storage
func (o OppFrom) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Scan implements sql.Scanner for database retrieval
func (o *OppFrom) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan OppFrom: invalid type")
	}
	return json.Unmarshal(bytes, o)
}

// Value implements driver.Valuer for database storage
func (o OppTo) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// Scan implements sql.Scanner for database retrieval
func (o *OppTo) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan OppTo: invalid type")
	}
	return json.Unmarshal(bytes, o)
}
