package summary

import "github.com/oppstream/oppstream-backend-go/internal/pkg/validator"

type GenerateSummaryRequest struct {
	DetailedNotes string `json:"detailed_notes"`
}

func (r *GenerateSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DetailedNotes) {
		errs = append(errs, validator.ValidationError{
			Field:   "detailed_notes",
			Message: "detailed_notes is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}
