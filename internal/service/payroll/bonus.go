package payroll

import (
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/utils"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	seniorityRatePerYear = decimal.RequireFromString("0.017")
	housingRate          = decimal.RequireFromString("0.10")
	monthlyTransport     = decimal.NewFromInt(18325)
	transportDays        = decimal.NewFromInt(26)
)

// IsWorkableDay reports whether d is a regular working day (Monday to Saturday).
func IsWorkableDay(d time.Time) bool {
	return d.Weekday() != time.Sunday
}

// attendanceStats counts workable, worked and unjustified days of the cycle.
// A day is unjustified when it is workable, between the hire date and asOf,
// and has neither a time entry nor a sick-leave override, or when an admin
// marked it unjustified explicitly.
func attendanceStats(entries []entry, overrides parsedOverrides, cycle payroll.Cycle, hireDate, asOf time.Time) payroll.AttendanceStats {
	worked := make(map[string]bool, len(entries))
	for _, e := range entries {
		worked[e.day.Format(validator.DateLayout)] = true
	}

	var stats payroll.AttendanceStats
	for _, d := range cycle.Days() {
		if IsWorkableDay(d) {
			stats.WorkableDays++
		}
	}

	for _, d := range cycle.Days() {
		key := d.Format(validator.DateLayout)
		switch {
		case overrides.unjustified[key]:
			// explicit marks never count as worked
		case worked[key] || overrides.sick[key]:
			stats.DaysWorked++
		}
		if overrides.sick[key] && !overrides.unjustified[key] {
			stats.SickLeaveDays++
		}

		if !IsWorkableDay(d) || d.Before(hireDate) || d.After(asOf) {
			continue
		}
		if overrides.unjustified[key] || (!worked[key] && !overrides.sick[key]) {
			stats.UnjustifiedDays++
		}
	}
	return stats
}

// earnings computes every gross component except overtime, which is passed in.
func earnings(base decimal.Decimal, hireDate, asOf time.Time, stats payroll.AttendanceStats, overtimePay decimal.Decimal, settings payroll.GlobalSettings) payroll.Earnings {
	e := payroll.Earnings{
		BaseSalary:       base,
		ProratedBase:     decimal.Zero,
		SeniorityBonus:   decimal.Zero,
		AttendanceBonus:  decimal.Zero,
		PerformanceBonus: decimal.Zero,
		OvertimePay:      overtimePay,
	}

	e.SeniorityYears = utils.CompletedYears(hireDate, asOf)
	if e.SeniorityYears > 0 {
		e.SeniorityBonus = roundMoney(base.Mul(seniorityRatePerYear).Mul(decimal.NewFromInt(int64(e.SeniorityYears))))
	}

	if stats.UnjustifiedDays == 0 {
		e.AttendanceBonus = settings.AttendanceBonus
		e.PerformanceBonus = settings.PerformanceBonus
	}

	days := decimal.NewFromInt(int64(stats.DaysWorked))
	if stats.WorkableDays > 0 {
		e.ProratedBase = roundMoney(base.Mul(days).Div(decimal.NewFromInt(int64(stats.WorkableDays))))
	}
	e.TransportBonus = roundMoney(monthlyTransport.Mul(days).Div(transportDays))
	e.HousingBonus = roundMoney(e.ProratedBase.Mul(housingRate))

	return e
}
