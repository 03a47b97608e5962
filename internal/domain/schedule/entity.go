package schedule

import "time"

// Shift is a named work schedule template. Times are "HH:mm" wall-clock
// strings; an EndTime at or before StartTime means the shift crosses midnight.
type Shift struct {
	ID        string
	Name      string
	StartTime string
	EndTime   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
