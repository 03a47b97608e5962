package leave

import (
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/utils"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

type AccrualCalculator struct {
}

func NewAccrualCalculator() *AccrualCalculator {
	return &AccrualCalculator{}
}

// Calculate returns the leave balance accrued at in.AsOf.
func (c *AccrualCalculator) Calculate(in leave.AccrualInput) (leave.Balance, error) {
	if in.HireDate == nil && in.LeaveStartDate == nil {
		return leave.Balance{}, leave.ErrHireDateMissing
	}

	formula := in.Formula
	if formula == "" {
		formula = leave.SurplusDoubled
	}
	if formula != leave.SurplusDoubled && formula != leave.SurplusLinear {
		return leave.Balance{}, leave.ErrInvalidFormula
	}

	asOf := utils.CivilDate(in.AsOf)
	cycleStart := c.cycleStart(in.HireDate, in.LeaveStartDate, asOf)

	months := 0
	if !cycleStart.After(asOf) {
		months = utils.CompletedMonths(cycleStart, asOf)
	}

	years := 0
	if in.HireDate != nil {
		years = utils.CompletedYears(utils.CivilDate(*in.HireDate), asOf)
	}

	balance := leave.Balance{
		AsOf:            asOf.Format(validator.DateLayout),
		CycleStart:      cycleStart.Format(validator.DateLayout),
		CompletedMonths: months,
		SeniorityYears:  years,
		BaseDays:        float64(months) * leave.DaysPerMonth,
		SurplusDoubled:  SenioritySurplus(years, leave.SurplusDoubled),
		SurplusLinear:   SenioritySurplus(years, leave.SurplusLinear),
		Formula:         formula,
	}
	if formula == leave.SurplusLinear {
		balance.SurplusDays = balance.SurplusLinear
	} else {
		balance.SurplusDays = balance.SurplusDoubled
	}
	balance.TotalDays = balance.BaseDays + balance.SurplusDays

	return balance, nil
}

// cycleStart is the explicit leave start date, or the latest hire anniversary
// on or before asOf.
func (c *AccrualCalculator) cycleStart(hireDate, leaveStartDate *time.Time, asOf time.Time) time.Time {
	if leaveStartDate != nil {
		return utils.CivilDate(*leaveStartDate)
	}

	hire := utils.CivilDate(*hireDate)
	anniversary := time.Date(asOf.Year(), hire.Month(), hire.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.After(asOf) {
		anniversary = anniversary.AddDate(-1, 0, 0)
	}
	if anniversary.Before(hire) {
		return hire
	}
	return anniversary
}

// SenioritySurplus returns the extra leave days earned after five years of service.
func SenioritySurplus(years int, formula leave.SurplusFormula) float64 {
	if years < leave.SurplusThresholdYears {
		return 0
	}
	steps := (years - leave.SurplusThresholdYears) / 2
	if formula == leave.SurplusLinear {
		return float64(2 + steps)
	}
	return float64(2 + steps*2)
}
