package employee

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oppstream/oppstream-backend-go/internal/domain/user"
)

type Employee struct {
	ID                string
	UserID            string
	EmployeeCode      string
	Name              string
	Email             string
	ContactNumber     *string
	DOB               *time.Time
	WorkLocation      *string
	EmploymentType    EmploymentType
	Rank              Rank
	ManagerID         *string
	Ancestors         []string
	BusinessUnitID    string
	Department        *string
	Team              *string
	Skills            Skills
	TotalExperience   *float64
	PreviousProjects  []string
	PreviousCompanies []string
	CurrentProjects   []string
	IsAvailable       bool
	ResumeURL         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EmployeeRef is a hydrated reference to another employee, used for
// ancestor chains and approver lookups.
type EmployeeRef struct {
	ID           string
	EmployeeCode string
	Name         string
	Email        string
	Rank         Rank
}

// Rank is an employee's position in the fixed four-level hierarchy,
// ordered bottom to top: EMP < RM < AM < BUH.
type Rank string

const (
	RankEMP Rank = "EMP"
	RankRM  Rank = "RM"
	RankAM  Rank = "AM"
	RankBUH Rank = "BUH"
)

func ParseRank(s string) (Rank, error) {
	switch Rank(s) {
	case RankEMP, RankRM, RankAM, RankBUH:
		return Rank(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
}

// RankForRole maps an authentication role to the employee rank it
// corresponds to. Admin accounts have no employee rank.
func RankForRole(role user.Role) (Rank, error) {
	switch role {
	case user.RoleEmployee:
		return RankEMP, nil
	case user.RoleReportingManager:
		return RankRM, nil
	case user.RoleAssociateManager:
		return RankAM, nil
	case user.RoleVP:
		return RankBUH, nil
	default:
		return "", fmt.Errorf("%w: no employee rank for role %q", ErrInvalidRank, role)
	}
}

// NextRankUp returns the rank directly above r, or false for BUH.
func (r Rank) NextRankUp() (Rank, bool) {
	switch r {
	case RankEMP:
		return RankRM, true
	case RankRM:
		return RankAM, true
	case RankAM:
		return RankBUH, true
	default:
		return "", false
	}
}

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "Full Time"
	EmploymentTypeIntern   EmploymentType = "Intern"
	EmploymentTypeContract EmploymentType = "Contract"
)

func ParseEmploymentType(s string) (EmploymentType, error) {
	switch EmploymentType(s) {
	case EmploymentTypeFullTime, EmploymentTypeIntern, EmploymentTypeContract:
		return EmploymentType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidEmploymentType, s)
	}
}

type Skill struct {
	SkillName        string  `json:"skill_name"`
	ProficiencyLevel string  `json:"proficiency_level,omitempty"`
	Experience       float64 `json:"experience,omitempty"`
}

// Skills is stored as a JSONB column.
type Skills []Skill

// Value implements driver.Valuer for database storage
func (s Skills) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *Skills) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Skills: invalid type")
	}

	return json.Unmarshal(bytes, s)
}
