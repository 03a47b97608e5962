package payroll

import (
	"fmt"
	"time"
)

// CycleClosingDay is the last day of a payroll cycle. A cycle runs from the
// day after it in the previous month up to and including it.
const CycleClosingDay = 25

// Cycle identifies a payroll cycle by the month and year of its closing day.
type Cycle struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func NewCycle(month, year int) (Cycle, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return Cycle{}, fmt.Errorf("%w: %d-%02d", ErrInvalidPeriod, year, month)
	}
	return Cycle{Month: month, Year: year}, nil
}

// CycleOf returns the cycle a calendar date belongs to.
func CycleOf(t time.Time) Cycle {
	if t.Day() > CycleClosingDay {
		t = time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	}
	return Cycle{Month: int(t.Month()), Year: t.Year()}
}

// Start is the first day of the cycle (the 26th of the previous month), at UTC midnight.
func (c Cycle) Start() time.Time {
	return time.Date(c.Year, time.Month(c.Month)-1, CycleClosingDay+1, 0, 0, 0, 0, time.UTC)
}

// End is the last day of the cycle (the 25th), at UTC midnight.
func (c Cycle) End() time.Time {
	return time.Date(c.Year, time.Month(c.Month), CycleClosingDay, 0, 0, 0, 0, time.UTC)
}

func (c Cycle) StartDate() string { return c.Start().Format(dateLayout) }
func (c Cycle) EndDate() string   { return c.End().Format(dateLayout) }

func (c Cycle) Previous() Cycle {
	p := time.Date(c.Year, time.Month(c.Month)-1, 1, 0, 0, 0, 0, time.UTC)
	return Cycle{Month: int(p.Month()), Year: p.Year()}
}

// Contains reports whether the civil date of d falls inside the cycle.
func (c Cycle) Contains(d time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(c.Start()) && !day.After(c.End())
}

// Days lists every calendar day of the cycle in order.
func (c Cycle) Days() []time.Time {
	var days []time.Time
	for d := c.Start(); !d.After(c.End()); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (c Cycle) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, c.Month)
}

const dateLayout = "2006-01-02"
