package attendance

import (
	"context"
)

// TimeEntryService defines business logic for clocking and time entry administration
type TimeEntryService interface {
	// ClockIn opens a session for the authenticated employee
	ClockIn(ctx context.Context, req ClockInRequest) (TimeEntryResponse, error)

	// ClockOut closes the authenticated employee's open session
	ClockOut(ctx context.Context, req ClockOutRequest) (TimeEntryResponse, error)

	// GetOpenSession returns the caller's open session, used to restore state after a reconnect
	GetOpenSession(ctx context.Context) (TimeEntryResponse, error)

	GetMyEntries(ctx context.Context, filter MyTimeEntryFilter) (ListTimeEntryResponse, error)

	// ListEntries retrieves entries with filters (admin)
	ListEntries(ctx context.Context, filter TimeEntryFilter) (ListTimeEntryResponse, error)

	GetEntry(ctx context.Context, id string) (TimeEntryResponse, error)

	// UpdateEntry lets an admin fix times or the holiday flag; duration and overtime are recomputed
	UpdateEntry(ctx context.Context, req UpdateTimeEntryRequest) (TimeEntryResponse, error)

	DeleteEntry(ctx context.Context, id string) error
}

// OverrideService manages per-day attendance exceptions (admin only)
type OverrideService interface {
	SetOverride(ctx context.Context, req SetOverrideRequest) (OverrideResponse, error)
	DeleteOverride(ctx context.Context, employeeID, date string) error
	ListOverrides(ctx context.Context, filter OverrideFilter) ([]OverrideResponse, error)
}
