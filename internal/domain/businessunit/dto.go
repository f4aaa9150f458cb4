package businessunit

import "github.com/oppstream/oppstream-backend-go/internal/pkg/validator"

type CreateBusinessUnitRequest struct {
	Name string `json:"name"`
}

func (r *CreateBusinessUnitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BusinessUnitResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToBusinessUnitResponse(bu BusinessUnit) BusinessUnitResponse {
	return BusinessUnitResponse{
		ID:   bu.ID,
		Name: bu.Name,
	}
}
