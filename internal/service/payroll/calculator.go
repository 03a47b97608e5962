package payroll

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/utils"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	leavesvc "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/leave"
	"github.com/shopspring/decimal"
)

// CalculationInput holds everything a payroll calculation reads. All slices
// must be fully loaded before calling Calculate.
type CalculationInput struct {
	Profile   employee.Profile
	Entries   []attendance.TimeEntry
	Shifts    []schedule.Shift
	Settings  payroll.GlobalSettings
	Overrides []attendance.Override
	Cycle     payroll.Cycle
	// AsOf bounds absence counting; zero means the end of the cycle
	AsOf time.Time
}

// Calculator turns time entries and a profile into a payroll breakdown.
// It does no I/O and keeps no state between calls.
type Calculator struct {
	accrual *leavesvc.AccrualCalculator
	logger  *slog.Logger
}

func NewCalculator(accrual *leavesvc.AccrualCalculator, logger *slog.Logger) *Calculator {
	if accrual == nil {
		accrual = leavesvc.NewAccrualCalculator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{accrual: accrual, logger: logger}
}

// Calculate runs the full pipeline. Incomplete profiles yield a breakdown with
// status insufficient_data; malformed inputs are skipped and reported as warnings.
func (c *Calculator) Calculate(in CalculationInput) payroll.Breakdown {
	currency := in.Profile.Currency
	if currency == "" {
		currency = employee.DefaultCurrency
	}

	b := payroll.Breakdown{
		Status:       payroll.BreakdownComputed,
		EmployeeID:   in.Profile.ID,
		EmployeeName: in.Profile.FullName,
		Currency:     currency,
		Cycle:        in.Cycle,
		CycleStart:   in.Cycle.StartDate(),
		CycleEnd:     in.Cycle.EndDate(),
	}

	if missing := in.Profile.MissingPayrollFields(); len(missing) > 0 {
		b.Status = payroll.BreakdownInsufficientData
		b.MissingFields = missing
		return b
	}

	asOf := in.AsOf
	if asOf.IsZero() || asOf.After(in.Cycle.End()) {
		asOf = in.Cycle.End()
	}
	asOf = utils.CivilDate(asOf)

	w := &warnings{logger: c.logger, employeeID: in.Profile.ID}

	base := *in.Profile.MonthlyBaseSalary
	hourlyRate := HourlyRate(base)
	b.HourlyRate = hourlyRate

	entries := parseEntries(in.Entries, in.Cycle, w)
	overrides := parseOverrides(in.Overrides, in.Cycle, w)

	b.Overtime = bucketOvertime(entries, shiftCatalog(in.Shifts, w), in.Settings.OvertimeRates, hourlyRate)

	hireDate := utils.CivilDate(*in.Profile.HireDate)
	b.Attendance = attendanceStats(entries, overrides, in.Cycle, hireDate, asOf)

	b.Earnings = earnings(base, hireDate, asOf, b.Attendance, b.Overtime.TotalPayout, in.Settings)
	b.Gross = decimal.Sum(
		b.Earnings.ProratedBase,
		b.Earnings.SeniorityBonus,
		b.Earnings.AttendanceBonus,
		b.Earnings.PerformanceBonus,
		b.Earnings.OvertimePay,
		b.Earnings.TransportBonus,
		b.Earnings.HousingBonus,
	)

	b.ReportedAbsencePenalty = roundMoney(in.Settings.AbsencePenaltyAmount.Mul(decimal.NewFromInt(int64(b.Attendance.UnjustifiedDays))))
	penalty := decimal.Zero
	if in.Settings.ApplyAbsencePenalty {
		penalty = b.ReportedAbsencePenalty
	}
	b.Deductions = deductions(b.Gross, b.Earnings, penalty)
	b.NetPay = b.Gross.Sub(b.Deductions.Total)

	balance, err := c.accrual.Calculate(leave.AccrualInput{
		HireDate:       in.Profile.HireDate,
		LeaveStartDate: in.Profile.LeaveStartDate,
		AsOf:           asOf,
		Formula:        in.Settings.LeaveSurplusFormula,
	})
	if err != nil {
		w.add("leave accrual skipped: %v", err)
	} else {
		balance.EmployeeID = in.Profile.ID
		b.Leave = &balance
	}

	b.Warnings = w.list
	return b
}

// HourlyRate is the monthly base divided by the legal 173.33 monthly hours, rounded.
func HourlyRate(monthlyBase decimal.Decimal) decimal.Decimal {
	if !monthlyBase.IsPositive() {
		return decimal.Zero
	}
	return monthlyBase.Div(monthlyHours).Round(0)
}

var monthlyHours = decimal.RequireFromString("173.33")

// roundMoney rounds half away from zero to whole currency units.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

type warnings struct {
	logger     *slog.Logger
	employeeID string
	list       []string
}

func (w *warnings) add(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	w.list = append(w.list, msg)
	w.logger.Warn("payroll: input skipped", "employee_id", w.employeeID, "reason", msg)
}

// entry is a time entry whose date parsed cleanly.
type entry struct {
	attendance.TimeEntry
	day      time.Time
	startMin int
}

func parseEntries(raw []attendance.TimeEntry, cycle payroll.Cycle, w *warnings) []entry {
	entries := make([]entry, 0, len(raw))
	for _, e := range raw {
		d, ok := validator.IsValidDate(e.Date)
		if !ok {
			w.add("time entry %s has malformed date %q", e.ID, e.Date)
			continue
		}
		if !cycle.Contains(d) {
			continue
		}
		start, ok := validator.ParseClock(e.StartTime)
		if !ok {
			w.add("time entry %s has malformed start time %q", e.ID, e.StartTime)
			start = 0
		}
		if e.OvertimeDuration < 0 {
			e.OvertimeDuration = 0
		}
		if e.Duration >= 0 && e.OvertimeDuration > e.Duration {
			w.add("time entry %s overtime %d exceeds duration %d, capped", e.ID, e.OvertimeDuration, e.Duration)
			e.OvertimeDuration = e.Duration
		}
		entries = append(entries, entry{TimeEntry: e, day: d, startMin: start})
	}
	return entries
}

// parsedOverrides are keyed by "YYYY-MM-DD".
type parsedOverrides struct {
	sick        map[string]bool
	unjustified map[string]bool
}

func parseOverrides(raw []attendance.Override, cycle payroll.Cycle, w *warnings) parsedOverrides {
	out := parsedOverrides{sick: map[string]bool{}, unjustified: map[string]bool{}}
	for _, o := range raw {
		d, ok := validator.IsValidDate(o.Date)
		if !ok {
			w.add("attendance override has malformed date %q", o.Date)
			continue
		}
		if !cycle.Contains(d) {
			continue
		}
		switch o.Status {
		case attendance.OverrideSickLeave:
			out.sick[o.Date] = true
		case attendance.OverrideUnjustifiedAbsence:
			out.unjustified[o.Date] = true
		default:
			w.add("attendance override on %s has unknown status %q", o.Date, o.Status)
		}
	}
	return out
}
