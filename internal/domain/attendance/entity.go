package attendance

import (
	"time"
)

type EntryStatus string

const (
	EntryStatusOpen       EntryStatus = "open"
	EntryStatusClosed     EntryStatus = "closed"
	EntryStatusAutoClosed EntryStatus = "auto_closed"
)

// TimeEntry is one clock-in/clock-out session. Date and clock fields keep the
// "YYYY-MM-DD" / "HH:mm" text form the payroll engine consumes.
type TimeEntry struct {
	ID               string
	EmployeeID       string
	Date             string
	StartTime        string
	EndTime          *string
	ClockInAt        time.Time
	ClockOutAt       *time.Time
	Duration         int
	OvertimeDuration int
	ShiftID          *string
	IsPublicHoliday  bool
	Latitude         *float64
	Longitude        *float64
	Status           EntryStatus
	Note             *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	EmployeeName *string
}

func (e TimeEntry) IsOpen() bool {
	return e.Status == EntryStatusOpen
}

type OverrideStatus string

const (
	OverrideUnjustifiedAbsence OverrideStatus = "unjustified_absence"
	OverrideSickLeave          OverrideStatus = "sick_leave"
)

var OverrideStatusValues = []string{
	string(OverrideUnjustifiedAbsence),
	string(OverrideSickLeave),
}

// Override is a per-day attendance exception. Date doubles as its identifier
// within an employee.
type Override struct {
	EmployeeID string
	Date       string
	Status     OverrideStatus
	Note       *string
	SetBy      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
