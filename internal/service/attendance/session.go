package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/statestore"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

// SessionPointerTTL bounds how long a reconnecting client can recover its running session.
const SessionPointerTTL = 24 * time.Hour

const minutesPerDay = 24 * 60

type sessionPointer struct {
	EntryID   string    `json:"entry_id"`
	ClockInAt time.Time `json:"clock_in_at"`
}

func sessionKey(employeeID string) string {
	return "clock_session:" + employeeID
}

func saveSessionPointer(ctx context.Context, store statestore.Store, employeeID string, p sessionPointer) {
	raw, err := json.Marshal(p)
	if err == nil {
		err = store.Set(ctx, sessionKey(employeeID), raw, SessionPointerTTL)
	}
	if err != nil {
		slog.Warn("failed to store session pointer", "employee_id", employeeID, "error", err)
	}
}

func loadSessionPointer(ctx context.Context, store statestore.Store, employeeID string) (sessionPointer, bool) {
	raw, err := store.Get(ctx, sessionKey(employeeID))
	if err != nil {
		if !errors.Is(err, statestore.ErrNotFound) {
			slog.Warn("failed to read session pointer", "employee_id", employeeID, "error", err)
		}
		return sessionPointer{}, false
	}
	var p sessionPointer
	if err := json.Unmarshal(raw, &p); err != nil || p.EntryID == "" {
		return sessionPointer{}, false
	}
	return p, true
}

// ClearSessionPointer drops the recovery pointer once a session is closed.
func ClearSessionPointer(ctx context.Context, store statestore.Store, employeeID string) {
	if err := store.Delete(ctx, sessionKey(employeeID)); err != nil {
		slog.Warn("failed to clear session pointer", "employee_id", employeeID, "error", err)
	}
}

// ComputeOvertime returns the minutes worked past the shift's scheduled end,
// capped by the session duration. Sessions without a shift have no overtime.
func ComputeOvertime(startClock string, duration int, shift *schedule.Shift) int {
	if shift == nil || duration <= 0 {
		return 0
	}
	start, ok := validator.ParseClock(startClock)
	if !ok {
		return 0
	}
	shiftStart, okStart := validator.ParseClock(shift.StartTime)
	shiftEnd, okEnd := validator.ParseClock(shift.EndTime)
	if !okStart || !okEnd {
		return 0
	}

	// A shift crossing midnight ends the next day, unless the session itself
	// started after midnight in the shift's tail.
	if shiftEnd <= shiftStart && start >= shiftEnd {
		shiftEnd += minutesPerDay
	}

	overtime := start + duration - shiftEnd
	if overtime < 0 {
		return 0
	}
	if overtime > duration {
		return duration
	}
	return overtime
}

// scheduledEnd is the instant a session on day should end under shift.
func scheduledEnd(day time.Time, startClock string, shift schedule.Shift, loc *time.Location) (time.Time, error) {
	start, okStart := validator.ParseClock(startClock)
	shiftStart, okShiftStart := validator.ParseClock(shift.StartTime)
	shiftEnd, okShiftEnd := validator.ParseClock(shift.EndTime)
	if !okStart || !okShiftStart || !okShiftEnd {
		return time.Time{}, fmt.Errorf("invalid clock value for shift %s", shift.ID)
	}
	if shiftEnd <= shiftStart && start >= shiftEnd {
		shiftEnd += minutesPerDay
	}
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return midnight.Add(time.Duration(shiftEnd) * time.Minute), nil
}

// clockRange converts a date and "HH:mm" pair into instants; an end at or
// before the start rolls over to the next day.
func clockRange(date, startClock, endClock string, loc *time.Location) (time.Time, time.Time, int, error) {
	day, err := time.ParseInLocation(validator.DateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	start, okStart := validator.ParseClock(startClock)
	end, okEnd := validator.ParseClock(endClock)
	if !okStart || !okEnd {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid clock range %s-%s", startClock, endClock)
	}
	duration := end - start
	if duration <= 0 {
		duration += minutesPerDay
	}
	startAt := day.Add(time.Duration(start) * time.Minute)
	return startAt, startAt.Add(time.Duration(duration) * time.Minute), duration, nil
}
