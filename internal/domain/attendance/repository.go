package attendance

import (
	"context"
	"time"
)

type TimeEntryRepository interface {
	Create(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	GetByID(ctx context.Context, id string) (TimeEntry, error)
	Update(ctx context.Context, entry TimeEntry) error
	Delete(ctx context.Context, id string) error

	// GetOpenSession returns the employee's unclosed entry, or ErrTimeEntryNotFound
	GetOpenSession(ctx context.Context, employeeID string) (TimeEntry, error)

	List(ctx context.Context, filter TimeEntryFilter) ([]TimeEntry, int64, error)

	// ListByEmployeeAndRange returns closed entries with from <= date <= to, ordered by date and start time
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to string) ([]TimeEntry, error)

	// GetStaleOpenSessions returns open entries clocked in before the given instant
	GetStaleOpenSessions(ctx context.Context, before time.Time) ([]TimeEntry, error)
}

type OverrideRepository interface {
	Upsert(ctx context.Context, override Override) (Override, error)
	Delete(ctx context.Context, employeeID string, date string) error
	ListByEmployee(ctx context.Context, employeeID string, from, to string) ([]Override, error)
}
