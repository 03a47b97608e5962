package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const timeEntryColumns = `
	te.id, te.employee_id, to_char(te.entry_date, 'YYYY-MM-DD'), to_char(te.start_time, 'HH24:MI'),
	to_char(te.end_time, 'HH24:MI'), te.clock_in_at, te.clock_out_at, te.duration_minutes,
	te.overtime_minutes, te.shift_id, te.is_public_holiday, te.latitude, te.longitude,
	te.status, te.note, te.created_at, te.updated_at, e.full_name`

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) attendance.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

func scanTimeEntry(row pgx.Row) (attendance.TimeEntry, error) {
	var e attendance.TimeEntry
	var status string
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Date, &e.StartTime,
		&e.EndTime, &e.ClockInAt, &e.ClockOutAt, &e.Duration,
		&e.OvertimeDuration, &e.ShiftID, &e.IsPublicHoliday, &e.Latitude, &e.Longitude,
		&status, &e.Note, &e.CreatedAt, &e.UpdatedAt, &e.EmployeeName,
	)
	e.Status = attendance.EntryStatus(status)
	return e, err
}

func collectTimeEntries(rows pgx.Rows) ([]attendance.TimeEntry, error) {
	defer rows.Close()

	var entries []attendance.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *timeEntryRepository) Create(ctx context.Context, entry attendance.TimeEntry) (attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH te AS (
			INSERT INTO time_entries (
				employee_id, entry_date, start_time, clock_in_at, shift_id,
				is_public_holiday, latitude, longitude, status, note
			) VALUES ($1, $2::date, $3::time, $4, $5, $6, $7, $8, $9, $10)
			RETURNING *
		)
		SELECT ` + timeEntryColumns + `
		FROM te
		JOIN employees e ON e.id = te.employee_id
	`

	created, err := scanTimeEntry(q.QueryRow(ctx, query,
		entry.EmployeeID, entry.Date, entry.StartTime, entry.ClockInAt, entry.ShiftID,
		entry.IsPublicHoliday, entry.Latitude, entry.Longitude, string(entry.Status), entry.Note,
	))
	if err != nil {
		if isUniqueViolation(err, "one_open") {
			return attendance.TimeEntry{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.TimeEntry{}, fmt.Errorf("failed to create time entry: %w", err)
	}
	return created, nil
}

func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries te
		JOIN employees e ON e.id = te.employee_id
		WHERE te.id = $1`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeEntry{}, attendance.ErrTimeEntryNotFound
		}
		return attendance.TimeEntry{}, fmt.Errorf("failed to get time entry: %w", err)
	}
	return entry, nil
}

// Update overwrites every mutable column of the entry.
func (r *timeEntryRepository) Update(ctx context.Context, entry attendance.TimeEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_entries SET
			entry_date = $1::date,
			start_time = $2::time,
			end_time = $3::time,
			clock_in_at = $4,
			clock_out_at = $5,
			duration_minutes = $6,
			overtime_minutes = $7,
			shift_id = $8,
			is_public_holiday = $9,
			status = $10,
			note = $11,
			updated_at = $12
		WHERE id = $13
	`

	tag, err := q.Exec(ctx, query,
		entry.Date, entry.StartTime, entry.EndTime, entry.ClockInAt, entry.ClockOutAt,
		entry.Duration, entry.OvertimeDuration, entry.ShiftID, entry.IsPublicHoliday,
		string(entry.Status), entry.Note, time.Now(), entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrTimeEntryNotFound
	}
	return nil
}

func (r *timeEntryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrTimeEntryNotFound
	}
	return nil
}

func (r *timeEntryRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries te
		JOIN employees e ON e.id = te.employee_id
		WHERE te.employee_id = $1 AND te.status = 'open'
		ORDER BY te.clock_in_at DESC
		LIMIT 1`

	entry, err := scanTimeEntry(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeEntry{}, attendance.ErrTimeEntryNotFound
		}
		return attendance.TimeEntry{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return entry, nil
}

// List expects Month/Year to have been resolved into From/To by the caller.
func (r *timeEntryRepository) List(ctx context.Context, filter attendance.TimeEntryFilter) ([]attendance.TimeEntry, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("te.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("te.entry_date >= $%d::date", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("te.entry_date <= $%d::date", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("te.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	baseQuery := `
		FROM time_entries te
		JOIN employees e ON e.id = te.employee_id
		WHERE ` + strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time entries: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf("SELECT %s %s ORDER BY te.entry_date DESC, te.start_time DESC LIMIT $%d OFFSET $%d",
		timeEntryColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time entries: %w", err)
	}
	entries, err := collectTimeEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *timeEntryRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to string) ([]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries te
		JOIN employees e ON e.id = te.employee_id
		WHERE te.employee_id = $1
		  AND te.entry_date BETWEEN $2::date AND $3::date
		  AND te.status <> 'open'
		ORDER BY te.entry_date, te.start_time`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries for employee %s: %w", employeeID, err)
	}
	return collectTimeEntries(rows)
}

func (r *timeEntryRepository) GetStaleOpenSessions(ctx context.Context, before time.Time) ([]attendance.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + `
		FROM time_entries te
		JOIN employees e ON e.id = te.employee_id
		WHERE te.status = 'open' AND te.clock_in_at < $1
		ORDER BY te.clock_in_at`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale open sessions: %w", err)
	}
	return collectTimeEntries(rows)
}
