package employee

import (
	"time"

	"github.com/oppstream/oppstream-backend-go/internal/pkg/validator"
)

type UpsertEmployeeRequest struct {
	EmployeeCode      string   `json:"employee_code"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	ContactNumber     *string  `json:"contact_number"`
	DOB               *string  `json:"dob"`
	WorkLocation      *string  `json:"work_location"`
	EmploymentType    string   `json:"employment_type"`
	Rank              string   `json:"rank"`
	ManagerID         *string  `json:"manager_id"`
	BusinessUnitID    string   `json:"business_unit_id"`
	Department        *string  `json:"department"`
	Team              *string  `json:"team"`
	Skills            Skills   `json:"skills"`
	TotalExperience   *float64 `json:"total_experience"`
	PreviousProjects  []string `json:"previous_projects"`
	PreviousCompanies []string `json:"previous_companies"`
	CurrentProjects   []string `json:"current_projects"`
	IsAvailable       *bool    `json:"is_available"`
	ResumeURL         *string  `json:"resume_url"`
}

func (r *UpsertEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address (e.g. user@example.com)",
		})
	}
	if validator.IsEmpty(r.BusinessUnitID) {
		errs = append(errs, validator.ValidationError{
			Field:   "business_unit_id",
			Message: "business_unit_id is required",
		})
	}
	if validator.IsEmpty(r.Rank) {
		errs = append(errs, validator.ValidationError{
			Field:   "rank",
			Message: "rank is required",
		})
	} else if _, err := ParseRank(r.Rank); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "rank",
			Message: "rank must be one of EMP, RM, AM, BUH",
		})
	}
	if !validator.IsEmpty(r.EmploymentType) {
		if _, err := ParseEmploymentType(r.EmploymentType); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "employment_type",
				Message: "employment_type must be one of Full Time, Intern, Contract",
			})
		}
	}
	if r.DOB != nil && !validator.IsEmpty(*r.DOB) {
		if _, ok := validator.IsValidDate(*r.DOB); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dob",
				Message: "dob must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID                string                `json:"id"`
	EmployeeCode      string                `json:"employee_code"`
	Name              string                `json:"name"`
	Email             string                `json:"email"`
	ContactNumber     *string               `json:"contact_number,omitempty"`
	DOB               *string               `json:"dob,omitempty"`
	WorkLocation      *string               `json:"work_location,omitempty"`
	EmploymentType    string                `json:"employment_type,omitempty"`
	Rank              string                `json:"rank"`
	ManagerID         *string               `json:"manager_id,omitempty"`
	Manager           *EmployeeRefResponse  `json:"manager,omitempty"`
	Ancestors         []EmployeeRefResponse `json:"ancestors,omitempty"`
	BusinessUnitID    string                `json:"business_unit_id"`
	BusinessUnitName  string                `json:"business_unit_name,omitempty"`
	Department        *string               `json:"department,omitempty"`
	Team              *string               `json:"team,omitempty"`
	Skills            Skills                `json:"skills,omitempty"`
	TotalExperience   *float64              `json:"total_experience,omitempty"`
	PreviousProjects  []string              `json:"previous_projects,omitempty"`
	PreviousCompanies []string              `json:"previous_companies,omitempty"`
	CurrentProjects   []string              `json:"current_projects,omitempty"`
	IsAvailable       bool                  `json:"is_available"`
	ResumeURL         *string               `json:"resume_url,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

type EmployeeRefResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Rank         string `json:"rank"`
}

func ToEmployeeRefResponse(ref EmployeeRef) EmployeeRefResponse {
	return EmployeeRefResponse{
		ID:           ref.ID,
		EmployeeCode: ref.EmployeeCode,
		Name:         ref.Name,
		Email:        ref.Email,
		Rank:         string(ref.Rank),
	}
}

func ToEmployeeResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                emp.ID,
		EmployeeCode:      emp.EmployeeCode,
		Name:              emp.Name,
		Email:             emp.Email,
		ContactNumber:     emp.ContactNumber,
		WorkLocation:      emp.WorkLocation,
		EmploymentType:    string(emp.EmploymentType),
		Rank:              string(emp.Rank),
		ManagerID:         emp.ManagerID,
		BusinessUnitID:    emp.BusinessUnitID,
		Department:        emp.Department,
		Team:              emp.Team,
		Skills:            emp.Skills,
		TotalExperience:   emp.TotalExperience,
		PreviousProjects:  emp.PreviousProjects,
		PreviousCompanies: emp.PreviousCompanies,
		CurrentProjects:   emp.CurrentProjects,
		IsAvailable:       emp.IsAvailable,
		ResumeURL:         emp.ResumeURL,
		CreatedAt:         emp.CreatedAt,
		UpdatedAt:         emp.UpdatedAt,
	}
	if emp.DOB != nil {
		dob := emp.DOB.Format("2006-01-02")
		resp.DOB = &dob
	}
	return resp
}

type SubordinatesResponse struct {
	Count     int                   `json:"count"`
	Employees []SubordinateResponse `json:"employees"`
}

type SubordinateResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Rank         string  `json:"rank"`
	ManagerID    *string `json:"manager_id,omitempty"`
	Team         *string `json:"team,omitempty"`
	IsAvailable  bool    `json:"is_available"`
}

func ToSubordinateResponse(emp Employee) SubordinateResponse {
	return SubordinateResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Email:        emp.Email,
		Rank:         string(emp.Rank),
		ManagerID:    emp.ManagerID,
		Team:         emp.Team,
		IsAvailable:  emp.IsAvailable,
	}
}

type ManagersResponse struct {
	Count    int               `json:"count"`
	Managers []ManagerResponse `json:"managers"`
}

type ManagerResponse struct {
	ID             string `json:"id"`
	EmployeeCode   string `json:"employee_code"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Rank           string `json:"rank"`
	BusinessUnitID string `json:"business_unit_id"`
}

type SubordinateCountsResponse struct {
	Total  int            `json:"total"`
	ByRank map[string]int `json:"by_rank"`
}
