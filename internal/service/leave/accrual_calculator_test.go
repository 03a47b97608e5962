package leave

import (
	"testing"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestAccrual_AnniversaryFallback(t *testing.T) {
	calc := NewAccrualCalculator()

	balance, err := calc.Calculate(leave.AccrualInput{
		HireDate: ptr(day(2020, 1, 15)),
		AsOf:     day(2025, 3, 25),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-15", balance.CycleStart)
	assert.Equal(t, 2, balance.CompletedMonths)
	assert.Equal(t, 3.0, balance.BaseDays)
	assert.Equal(t, 5, balance.SeniorityYears)
	assert.Equal(t, 2.0, balance.SurplusDoubled)
	assert.Equal(t, 2.0, balance.SurplusLinear)
	assert.Equal(t, leave.SurplusDoubled, balance.Formula)
	assert.Equal(t, 5.0, balance.TotalDays)
}

func TestAccrual_AnniversaryNotYetReached(t *testing.T) {
	calc := NewAccrualCalculator()

	balance, err := calc.Calculate(leave.AccrualInput{
		HireDate: ptr(day(2023, 6, 10)),
		AsOf:     day(2025, 3, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", balance.CycleStart)
	assert.Equal(t, 8, balance.CompletedMonths)
	assert.Equal(t, 12.0, balance.BaseDays)
	assert.Equal(t, 0.0, balance.SurplusDays)
}

func TestAccrual_ExplicitLeaveStartDate(t *testing.T) {
	calc := NewAccrualCalculator()

	balance, err := calc.Calculate(leave.AccrualInput{
		HireDate:       ptr(day(2015, 2, 1)),
		LeaveStartDate: ptr(day(2024, 11, 1)),
		AsOf:           day(2025, 5, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-11-01", balance.CycleStart)
	assert.Equal(t, 6, balance.CompletedMonths)
	assert.Equal(t, 9.0, balance.BaseDays)
	assert.Equal(t, 10, balance.SeniorityYears)
	// years 10: floor(5/2) = 2
	assert.Equal(t, 6.0, balance.SurplusDoubled)
	assert.Equal(t, 4.0, balance.SurplusLinear)
	assert.Equal(t, 15.0, balance.TotalDays)
}

func TestAccrual_LinearFormulaSelected(t *testing.T) {
	calc := NewAccrualCalculator()

	balance, err := calc.Calculate(leave.AccrualInput{
		HireDate:       ptr(day(2015, 2, 1)),
		LeaveStartDate: ptr(day(2024, 11, 1)),
		AsOf:           day(2025, 5, 1),
		Formula:        leave.SurplusLinear,
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, balance.SurplusDays)
	assert.Equal(t, 13.0, balance.TotalDays)
}

func TestAccrual_LeaveStartInFuture(t *testing.T) {
	calc := NewAccrualCalculator()

	balance, err := calc.Calculate(leave.AccrualInput{
		HireDate:       ptr(day(2024, 1, 1)),
		LeaveStartDate: ptr(day(2025, 6, 1)),
		AsOf:           day(2025, 5, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, balance.CompletedMonths)
	assert.Equal(t, 0.0, balance.TotalDays)
}

func TestAccrual_Errors(t *testing.T) {
	calc := NewAccrualCalculator()

	_, err := calc.Calculate(leave.AccrualInput{AsOf: day(2025, 1, 1)})
	assert.ErrorIs(t, err, leave.ErrHireDateMissing)

	_, err = calc.Calculate(leave.AccrualInput{
		HireDate: ptr(day(2020, 1, 1)),
		AsOf:     day(2025, 1, 1),
		Formula:  "quadratic",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidFormula)
}

func TestSenioritySurplus(t *testing.T) {
	tests := []struct {
		years   int
		doubled float64
		linear  float64
	}{
		{0, 0, 0},
		{4, 0, 0},
		{5, 2, 2},
		{6, 2, 2},
		{7, 4, 3},
		{9, 6, 4},
		{15, 12, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.doubled, SenioritySurplus(tt.years, leave.SurplusDoubled), "doubled, %d years", tt.years)
		assert.Equal(t, tt.linear, SenioritySurplus(tt.years, leave.SurplusLinear), "linear, %d years", tt.years)
	}
}

func TestAccrual_MonotonicInElapsedMonths(t *testing.T) {
	calc := NewAccrualCalculator()
	start := day(2024, 3, 10)

	prev := -1.0
	for m := 0; m <= 24; m++ {
		balance, err := calc.Calculate(leave.AccrualInput{
			HireDate:       ptr(day(2024, 3, 10)),
			LeaveStartDate: ptr(start),
			AsOf:           start.AddDate(0, m, 0),
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, balance.TotalDays, 0.0)
		assert.GreaterOrEqual(t, balance.TotalDays, prev)
		prev = balance.TotalDays
	}
}
