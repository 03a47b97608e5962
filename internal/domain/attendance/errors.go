package attendance

import "errors"

var (
	// Clock-in / clock-out errors
	ErrAlreadyClockedIn     = errors.New("you already have an open session")
	ErrNotClockedIn         = errors.New("you have not clocked in yet")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed radius")

	// General errors
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrEntryStillOpen    = errors.New("time entry is still open")
	ErrInvalidTimeRange  = errors.New("end time must differ from start time")
	ErrUnauthorized      = errors.New("unauthorized to access this time entry")
	ErrOverrideNotFound  = errors.New("attendance override not found")
)
