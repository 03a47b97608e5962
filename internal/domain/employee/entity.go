package employee

import (
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/shopspring/decimal"
)

// Profile is an employee record as seen by payroll. Salary and hire date are
// nullable because profiles are created at registration, before an admin
// completes them.
type Profile struct {
	ID                string
	UserID            *string
	FullName          string
	Email             *string
	MonthlyBaseSalary *decimal.Decimal
	Currency          string
	HireDate          *time.Time
	LeaveStartDate    *time.Time
	Profession        *string
	Role              user.Role
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

const DefaultCurrency = "XAF"

// MissingPayrollFields lists the profile fields payroll cannot run without.
func (p Profile) MissingPayrollFields() []string {
	var missing []string
	if p.MonthlyBaseSalary == nil || !p.MonthlyBaseSalary.IsPositive() {
		missing = append(missing, "monthly_base_salary")
	}
	if p.HireDate == nil || p.HireDate.IsZero() {
		missing = append(missing, "hire_date")
	}
	return missing
}
