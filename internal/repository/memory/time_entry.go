package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/google/uuid"
)

type TimeEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]attendance.TimeEntry
}

func NewTimeEntryRepository(seed ...attendance.TimeEntry) *TimeEntryRepository {
	r := &TimeEntryRepository{entries: make(map[string]attendance.TimeEntry)}
	for _, e := range seed {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		r.entries[e.ID] = e
	}
	return r
}

func (r *TimeEntryRepository) Create(_ context.Context, entry attendance.TimeEntry) (attendance.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.Status == attendance.EntryStatusOpen {
		for _, e := range r.entries {
			if e.EmployeeID == entry.EmployeeID && e.IsOpen() {
				return attendance.TimeEntry{}, attendance.ErrAlreadyClockedIn
			}
		}
	}

	now := time.Now()
	entry.ID = uuid.NewString()
	entry.CreatedAt, entry.UpdatedAt = now, now
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *TimeEntryRepository) GetByID(_ context.Context, id string) (attendance.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return attendance.TimeEntry{}, attendance.ErrTimeEntryNotFound
	}
	return e, nil
}

func (r *TimeEntryRepository) Update(_ context.Context, entry attendance.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.ID]; !ok {
		return attendance.ErrTimeEntryNotFound
	}
	entry.UpdatedAt = time.Now()
	r.entries[entry.ID] = entry
	return nil
}

func (r *TimeEntryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return attendance.ErrTimeEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *TimeEntryRepository) GetOpenSession(_ context.Context, employeeID string) (attendance.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.EmployeeID == employeeID && e.IsOpen() {
			return e, nil
		}
	}
	return attendance.TimeEntry{}, attendance.ErrTimeEntryNotFound
}

func (r *TimeEntryRepository) collect(keep func(attendance.TimeEntry) bool, ascending bool) []attendance.TimeEntry {
	var out []attendance.TimeEntry
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return (a.Date < b.Date) == ascending
		}
		if a.StartTime != b.StartTime {
			return (a.StartTime < b.StartTime) == ascending
		}
		return a.ID < b.ID
	})
	return out
}

func (r *TimeEntryRepository) List(_ context.Context, filter attendance.TimeEntryFilter) ([]attendance.TimeEntry, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.collect(func(e attendance.TimeEntry) bool {
		switch {
		case filter.EmployeeID != nil && e.EmployeeID != *filter.EmployeeID:
			return false
		case filter.From != nil && e.Date < *filter.From:
			return false
		case filter.To != nil && e.Date > *filter.To:
			return false
		case filter.Status != nil && string(e.Status) != *filter.Status:
			return false
		}
		return true
	}, false)
	return paginate(matches, filter.Page, filter.Limit, 50), int64(len(matches)), nil
}

func (r *TimeEntryRepository) ListByEmployeeAndRange(_ context.Context, employeeID string, from, to string) ([]attendance.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e attendance.TimeEntry) bool {
		return e.EmployeeID == employeeID && !e.IsOpen() && e.Date >= from && e.Date <= to
	}, true), nil
}

func (r *TimeEntryRepository) GetStaleOpenSessions(_ context.Context, before time.Time) ([]attendance.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(e attendance.TimeEntry) bool {
		return e.IsOpen() && e.ClockInAt.Before(before)
	}, true), nil
}

type OverrideRepository struct {
	mu        sync.RWMutex
	overrides map[string]attendance.Override
}

func NewOverrideRepository(seed ...attendance.Override) *OverrideRepository {
	r := &OverrideRepository{overrides: make(map[string]attendance.Override)}
	for _, o := range seed {
		r.overrides[overrideKey(o.EmployeeID, o.Date)] = o
	}
	return r
}

func overrideKey(employeeID, date string) string {
	return employeeID + "|" + date
}

func (r *OverrideRepository) Upsert(_ context.Context, override attendance.Override) (attendance.Override, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := overrideKey(override.EmployeeID, override.Date)
	now := time.Now()
	if existing, ok := r.overrides[key]; ok {
		override.CreatedAt = existing.CreatedAt
	} else {
		override.CreatedAt = now
	}
	override.UpdatedAt = now
	r.overrides[key] = override
	return override, nil
}

func (r *OverrideRepository) Delete(_ context.Context, employeeID string, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := overrideKey(employeeID, date)
	if _, ok := r.overrides[key]; !ok {
		return attendance.ErrOverrideNotFound
	}
	delete(r.overrides, key)
	return nil
}

func (r *OverrideRepository) ListByEmployee(_ context.Context, employeeID string, from, to string) ([]attendance.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Override
	for _, o := range r.overrides {
		if o.EmployeeID == employeeID && o.Date >= from && o.Date <= to {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
