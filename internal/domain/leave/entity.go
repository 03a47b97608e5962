package leave

import "time"

// SurplusFormula selects how seniority surplus days grow past five years of service.
type SurplusFormula string

const (
	// SurplusDoubled grants 2 + floor((years-5)/2)*2 days
	SurplusDoubled SurplusFormula = "doubled"
	// SurplusLinear grants 2 + floor((years-5)/2) days
	SurplusLinear SurplusFormula = "linear"
)

var SurplusFormulaValues = []string{string(SurplusDoubled), string(SurplusLinear)}

const (
	DaysPerMonth          = 1.5
	SurplusThresholdYears = 5
)

// Balance is the accrued leave of one employee at a given date.
type Balance struct {
	EmployeeID      string         `json:"employee_id,omitempty"`
	AsOf            string         `json:"as_of"`
	CycleStart      string         `json:"cycle_start"`
	CompletedMonths int            `json:"completed_months"`
	SeniorityYears  int            `json:"seniority_years"`
	BaseDays        float64        `json:"base_days"`
	SurplusDoubled  float64        `json:"surplus_doubled"`
	SurplusLinear   float64        `json:"surplus_linear"`
	Formula         SurplusFormula `json:"formula"`
	SurplusDays     float64        `json:"surplus_days"`
	TotalDays       float64        `json:"total_days"`
}

// AccrualInput is what the accrual calculation needs from a profile.
type AccrualInput struct {
	HireDate       *time.Time
	LeaveStartDate *time.Time
	AsOf           time.Time
	Formula        SurplusFormula
}
