package leave

import (
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

type BalanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	AsOf       *string `json:"as_of,omitempty"`
}

func (r *BalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if r.AsOf != nil {
		if _, ok := validator.IsValidDate(*r.AsOf); !ok {
			errs = append(errs, validator.ValidationError{Field: "as_of", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
