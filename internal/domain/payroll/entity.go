package payroll

import (
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/shopspring/decimal"
)

// OvertimeRates are the pay multipliers applied to each overtime bucket.
type OvertimeRates struct {
	Tier1   decimal.Decimal `json:"tier1"`
	Tier2   decimal.Decimal `json:"tier2"`
	Night   decimal.Decimal `json:"night"`
	Sunday  decimal.Decimal `json:"sunday"`
	Holiday decimal.Decimal `json:"holiday"`
}

func (r OvertimeRates) For(kind BucketKind) decimal.Decimal {
	switch kind {
	case BucketTier1:
		return r.Tier1
	case BucketTier2:
		return r.Tier2
	case BucketNight:
		return r.Night
	case BucketSunday:
		return r.Sunday
	case BucketHoliday:
		return r.Holiday
	}
	return decimal.Zero
}

// GlobalSettings is the organisation-wide payroll configuration (singleton).
type GlobalSettings struct {
	ID                   string
	OvertimeRates        OvertimeRates
	AbsencePenaltyAmount decimal.Decimal
	ApplyAbsencePenalty  bool
	AttendanceBonus      decimal.Decimal
	PerformanceBonus     decimal.Decimal
	GeofenceRadius       int
	WorkplaceLatitude    *float64
	WorkplaceLongitude   *float64
	LeaveSurplusFormula  leave.SurplusFormula
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultSettings are used until an admin stores settings of their own.
func DefaultSettings() GlobalSettings {
	return GlobalSettings{
		OvertimeRates: OvertimeRates{
			Tier1:   decimal.RequireFromString("1.2"),
			Tier2:   decimal.RequireFromString("1.3"),
			Night:   decimal.RequireFromString("1.4"),
			Sunday:  decimal.RequireFromString("1.4"),
			Holiday: decimal.RequireFromString("1.5"),
		},
		AbsencePenaltyAmount: decimal.Zero,
		ApplyAbsencePenalty:  false,
		AttendanceBonus:      decimal.NewFromInt(5000),
		PerformanceBonus:     decimal.NewFromInt(10000),
		GeofenceRadius:       100,
		LeaveSurplusFormula:  leave.SurplusDoubled,
	}
}

// GeofenceEnabled reports whether clock-in location checks apply.
func (s GlobalSettings) GeofenceEnabled() bool {
	return s.GeofenceRadius > 0 && s.WorkplaceLatitude != nil && s.WorkplaceLongitude != nil
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft PayrollStatus = "draft"
	PayrollStatusPaid  PayrollStatus = "paid"
)

// PayrollRecord - persisted result of one cycle for one employee
type PayrollRecord struct {
	ID                   string
	EmployeeID           string
	PeriodMonth          int
	PeriodYear           int
	Currency             string
	BaseSalary           decimal.Decimal
	ProratedBaseSalary   decimal.Decimal
	TotalAllowances      decimal.Decimal
	TotalDeductions      decimal.Decimal
	AllowancesDetail     map[string]decimal.Decimal
	DeductionsDetail     map[string]decimal.Decimal
	TotalWorkDays        int
	WorkableDays         int
	UnjustifiedDays      int
	TotalOvertimeMinutes int
	OvertimeAmount       decimal.Decimal
	GrossSalary          decimal.Decimal
	NetSalary            decimal.Decimal
	Breakdown            *Breakdown
	Status               PayrollStatus
	PaidAt               *time.Time
	PaidBy               *string
	Notes                *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Joined fields
	EmployeeName *string
}

// NewPayrollRecord builds a draft record from a computed breakdown.
func NewPayrollRecord(employeeID string, b Breakdown) PayrollRecord {
	bd := b
	return PayrollRecord{
		EmployeeID:           employeeID,
		PeriodMonth:          b.Cycle.Month,
		PeriodYear:           b.Cycle.Year,
		Currency:             b.Currency,
		BaseSalary:           b.Earnings.BaseSalary,
		ProratedBaseSalary:   b.Earnings.ProratedBase,
		TotalAllowances:      b.Earnings.Allowances(),
		TotalDeductions:      b.Deductions.Total,
		AllowancesDetail:     b.AllowancesDetail(),
		DeductionsDetail:     b.DeductionsDetail(),
		TotalWorkDays:        b.Attendance.DaysWorked,
		WorkableDays:         b.Attendance.WorkableDays,
		UnjustifiedDays:      b.Attendance.UnjustifiedDays,
		TotalOvertimeMinutes: b.Overtime.TotalMinutes,
		OvertimeAmount:       b.Overtime.TotalPayout,
		GrossSalary:          b.Gross,
		NetSalary:            b.NetPay,
		Breakdown:            &bd,
		Status:               PayrollStatusDraft,
	}
}
