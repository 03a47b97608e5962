package payroll

import (
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/shopspring/decimal"
)

type BreakdownStatus string

const (
	BreakdownComputed         BreakdownStatus = "computed"
	BreakdownInsufficientData BreakdownStatus = "insufficient_data"
)

type BucketKind string

const (
	BucketTier1   BucketKind = "tier1"
	BucketTier2   BucketKind = "tier2"
	BucketNight   BucketKind = "night"
	BucketSunday  BucketKind = "sunday"
	BucketHoliday BucketKind = "holiday"
)

// BucketKinds is the reporting order of overtime buckets.
var BucketKinds = []BucketKind{BucketTier1, BucketTier2, BucketNight, BucketSunday, BucketHoliday}

type Bucket struct {
	Kind    BucketKind      `json:"kind"`
	Minutes int             `json:"minutes"`
	Rate    decimal.Decimal `json:"rate"`
	Payout  decimal.Decimal `json:"payout"`
}

// EntryAllocation records how one time entry's overtime was split.
type EntryAllocation struct {
	EntryID         string `json:"entry_id"`
	Date            string `json:"date"`
	ISOWeek         string `json:"iso_week"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	Tier1           int    `json:"tier1"`
	Tier2           int    `json:"tier2"`
	Night           int    `json:"night"`
	Sunday          int    `json:"sunday"`
	Holiday         int    `json:"holiday"`
}

func (a EntryAllocation) Total() int {
	return a.Tier1 + a.Tier2 + a.Night + a.Sunday + a.Holiday
}

type OvertimeBreakdown struct {
	Buckets      []Bucket          `json:"buckets"`
	Allocations  []EntryAllocation `json:"allocations"`
	TotalMinutes int               `json:"total_minutes"`
	TotalPayout  decimal.Decimal   `json:"total_payout"`
}

// Bucket returns the bucket of the given kind, or a zero bucket.
func (o OvertimeBreakdown) Bucket(kind BucketKind) Bucket {
	for _, b := range o.Buckets {
		if b.Kind == kind {
			return b
		}
	}
	return Bucket{Kind: kind}
}

type AttendanceStats struct {
	WorkableDays    int `json:"workable_days"`
	DaysWorked      int `json:"days_worked"`
	SickLeaveDays   int `json:"sick_leave_days"`
	UnjustifiedDays int `json:"unjustified_days"`
}

type Earnings struct {
	BaseSalary       decimal.Decimal `json:"base_salary"`
	ProratedBase     decimal.Decimal `json:"prorated_base"`
	SeniorityYears   int             `json:"seniority_years"`
	SeniorityBonus   decimal.Decimal `json:"seniority_bonus"`
	AttendanceBonus  decimal.Decimal `json:"attendance_bonus"`
	PerformanceBonus decimal.Decimal `json:"performance_bonus"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	TransportBonus   decimal.Decimal `json:"transport_bonus"`
	HousingBonus     decimal.Decimal `json:"housing_bonus"`
}

// Allowances is everything in gross except the prorated base.
func (e Earnings) Allowances() decimal.Decimal {
	return decimal.Sum(e.SeniorityBonus, e.AttendanceBonus, e.PerformanceBonus,
		e.OvertimePay, e.TransportBonus, e.HousingBonus)
}

type Deductions struct {
	Pension             decimal.Decimal `json:"pension"`
	LocalDevelopmentTax decimal.Decimal `json:"local_development_tax"`
	IncomeTax           decimal.Decimal `json:"income_tax"`
	IncomeTaxSurcharge  decimal.Decimal `json:"income_tax_surcharge"`
	BroadcastFee        decimal.Decimal `json:"broadcast_fee"`
	UnionDues           decimal.Decimal `json:"union_dues"`
	CommunalTax         decimal.Decimal `json:"communal_tax"`
	AbsencePenalty      decimal.Decimal `json:"absence_penalty"`
	Total               decimal.Decimal `json:"total"`
}

// Breakdown is the full result of one payroll calculation.
type Breakdown struct {
	Status        BreakdownStatus `json:"status"`
	MissingFields []string        `json:"missing_fields,omitempty"`
	Warnings      []string        `json:"warnings,omitempty"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Currency      string          `json:"currency"`
	Cycle         Cycle           `json:"cycle"`
	CycleStart    string          `json:"cycle_start"`
	CycleEnd      string          `json:"cycle_end"`

	HourlyRate decimal.Decimal   `json:"hourly_rate"`
	Overtime   OvertimeBreakdown `json:"overtime"`
	Attendance AttendanceStats   `json:"attendance"`
	Earnings   Earnings          `json:"earnings"`
	Gross      decimal.Decimal   `json:"gross"`
	Deductions Deductions        `json:"deductions"`
	NetPay     decimal.Decimal   `json:"net_pay"`

	// ReportedAbsencePenalty is always computed; it only reaches
	// Deductions.AbsencePenalty when the settings apply it.
	ReportedAbsencePenalty decimal.Decimal `json:"reported_absence_penalty"`

	Leave *leave.Balance `json:"leave,omitempty"`
}

func (b Breakdown) IsComputed() bool {
	return b.Status == BreakdownComputed
}

func (b Breakdown) AllowancesDetail() map[string]decimal.Decimal {
	e := b.Earnings
	return map[string]decimal.Decimal{
		"seniority_bonus":   e.SeniorityBonus,
		"attendance_bonus":  e.AttendanceBonus,
		"performance_bonus": e.PerformanceBonus,
		"overtime_pay":      e.OvertimePay,
		"transport_bonus":   e.TransportBonus,
		"housing_bonus":     e.HousingBonus,
	}
}

func (b Breakdown) DeductionsDetail() map[string]decimal.Decimal {
	d := b.Deductions
	return map[string]decimal.Decimal{
		"pension":               d.Pension,
		"local_development_tax": d.LocalDevelopmentTax,
		"income_tax":            d.IncomeTax,
		"income_tax_surcharge":  d.IncomeTaxSurcharge,
		"broadcast_fee":         d.BroadcastFee,
		"union_dues":            d.UnionDues,
		"communal_tax":          d.CommunalTax,
		"absence_penalty":       d.AbsencePenalty,
	}
}
