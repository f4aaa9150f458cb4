package user

import "github.com/oppstream/oppstream-backend-go/internal/pkg/validator"

// ListFilter narrows the admin user listing.
type ListFilter struct {
	Role   *Role
	Search *string
	Page   int
	Limit  int
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	// An all-nil body is left to the service, which answers ErrNothingToUpdate.
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Role != nil {
		if _, ok := ParseRole(*r.Role); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "role",
				Message: "role must be one of: employee, reporting manager, associate manager, VP, admin",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateUserRequest struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Role           string  `json:"role"`
	EmployeeCode   *string `json:"employee_code,omitempty"`
	BusinessUnitID *string `json:"business_unit_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
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
			Message: "email must be a valid email address",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	role, ok := ParseRole(r.Role)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: employee, reporting manager, associate manager, VP, admin",
		})
	}

	// Every non-admin user carries an employee profile.
	if ok && role != RoleAdmin {
		if r.EmployeeCode == nil || validator.IsEmpty(*r.EmployeeCode) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_code",
				Message: "employee_code is required for non-admin users",
			})
		}
		if r.BusinessUnitID == nil || !validator.IsValidUUID(*r.BusinessUnitID) {
			errs = append(errs, validator.ValidationError{
				Field:   "business_unit_id",
				Message: "business_unit_id must be a valid uuid",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// EmployeeInfo is the profile slice attached to admin user listings. It is a
// flat copy, not the employee domain type, to keep this package free of an
// employee import.
type EmployeeInfo struct {
	ID             string  `json:"id"`
	EmployeeCode   string  `json:"employee_code"`
	Name           string  `json:"name"`
	Rank           string  `json:"rank"`
	BusinessUnitID *string `json:"business_unit_id,omitempty"`
}

type UserDetailResponse struct {
	UserResponse
	Employee *EmployeeInfo `json:"employee,omitempty"`
}

type UserListResponse struct {
	Users []UserDetailResponse `json:"users"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
