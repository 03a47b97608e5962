package employee

import (
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateProfileRequest struct {
	UserID            *string          `json:"user_id,omitempty"`
	FullName          string           `json:"full_name"`
	Email             *string          `json:"email,omitempty"`
	MonthlyBaseSalary *decimal.Decimal `json:"monthly_base_salary,omitempty"`
	Currency          string           `json:"currency"`
	HireDate          *string          `json:"hire_date,omitempty"`
	LeaveStartDate    *string          `json:"leave_start_date,omitempty"`
	Profession        *string          `json:"profession,omitempty"`
	Role              string           `json:"role"`
}

func (r *CreateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.UserID != nil && !validator.IsValidUUID(*r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "must be a valid UUID"})
	}
	if r.Role != "" && !validator.IsInSlice(r.Role, user.RoleValues) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'admin' or 'employee'"})
	}
	errs = append(errs, validatePayrollFields(r.MonthlyBaseSalary, r.HireDate, r.LeaveStartDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProfileRequest struct {
	ID                string           `json:"-"`
	FullName          *string          `json:"full_name,omitempty"`
	MonthlyBaseSalary *decimal.Decimal `json:"monthly_base_salary,omitempty"`
	Currency          *string          `json:"currency,omitempty"`
	HireDate          *string          `json:"hire_date,omitempty"`
	LeaveStartDate    *string          `json:"leave_start_date,omitempty"`
	Profession        *string          `json:"profession,omitempty"`
	Role              *string          `json:"role,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "cannot be empty"})
	}
	if r.Currency != nil && len(*r.Currency) != 3 {
		errs = append(errs, validator.ValidationError{Field: "currency", Message: "must be a 3-letter ISO code"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, user.RoleValues) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be 'admin' or 'employee'"})
	}
	errs = append(errs, validatePayrollFields(r.MonthlyBaseSalary, r.HireDate, r.LeaveStartDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePayrollFields(salary *decimal.Decimal, hireDate, leaveStartDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if salary != nil && salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_base_salary", Message: "must be non-negative"})
	}

	var hire time.Time
	if hireDate != nil {
		d, ok := validator.IsValidDate(*hireDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be in YYYY-MM-DD format"})
		} else if d.After(time.Now()) {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: ErrFutureDateNotAllowed.Error()})
		}
		hire = d
	}
	if leaveStartDate != nil {
		d, ok := validator.IsValidDate(*leaveStartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "leave_start_date", Message: "must be in YYYY-MM-DD format"})
		} else if !hire.IsZero() && d.Before(hire) {
			errs = append(errs, validator.ValidationError{Field: "leave_start_date", Message: "cannot be before hire_date"})
		}
	}
	return errs
}

type ProfileFilter struct {
	Search     *string `json:"search,omitempty"`
	ActiveOnly bool    `json:"active_only"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ProfileResponse struct {
	ID                string           `json:"id"`
	UserID            *string          `json:"user_id,omitempty"`
	FullName          string           `json:"full_name"`
	Email             *string          `json:"email,omitempty"`
	MonthlyBaseSalary *decimal.Decimal `json:"monthly_base_salary,omitempty"`
	Currency          string           `json:"currency"`
	HireDate          *string          `json:"hire_date,omitempty"`
	LeaveStartDate    *string          `json:"leave_start_date,omitempty"`
	Profession        *string          `json:"profession,omitempty"`
	Role              string           `json:"role"`
	IsActive          bool             `json:"is_active"`
	PayrollReady      bool             `json:"payroll_ready"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		FullName:          p.FullName,
		Email:             p.Email,
		MonthlyBaseSalary: p.MonthlyBaseSalary,
		Currency:          p.Currency,
		HireDate:          formatDatePtr(p.HireDate),
		LeaveStartDate:    formatDatePtr(p.LeaveStartDate),
		Profession:        p.Profession,
		Role:              string(p.Role),
		IsActive:          p.IsActive,
		PayrollReady:      len(p.MissingPayrollFields()) == 0,
	}
}

type ListProfileResponse struct {
	Data       []ProfileResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validator.DateLayout)
	return &s
}
