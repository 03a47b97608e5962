package postgresql

import (
	"context"
	"fmt"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const overrideColumns = `employee_id, to_char(override_date, 'YYYY-MM-DD'), status, note, set_by, created_at, updated_at`

type overrideRepository struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) attendance.OverrideRepository {
	return &overrideRepository{db: db}
}

func scanOverride(row pgx.Row) (attendance.Override, error) {
	var o attendance.Override
	var status string
	err := row.Scan(&o.EmployeeID, &o.Date, &status, &o.Note, &o.SetBy, &o.CreatedAt, &o.UpdatedAt)
	o.Status = attendance.OverrideStatus(status)
	return o, err
}

func (r *overrideRepository) Upsert(ctx context.Context, override attendance.Override) (attendance.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_overrides (employee_id, override_date, status, note, set_by)
		VALUES ($1, $2::date, $3, $4, $5)
		ON CONFLICT (employee_id, override_date) DO UPDATE SET
			status = EXCLUDED.status,
			note = EXCLUDED.note,
			set_by = EXCLUDED.set_by,
			updated_at = NOW()
		RETURNING ` + overrideColumns

	saved, err := scanOverride(q.QueryRow(ctx, query,
		override.EmployeeID, override.Date, string(override.Status), override.Note, override.SetBy,
	))
	if err != nil {
		return attendance.Override{}, fmt.Errorf("failed to upsert attendance override: %w", err)
	}
	return saved, nil
}

func (r *overrideRepository) Delete(ctx context.Context, employeeID string, date string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM attendance_overrides WHERE employee_id = $1 AND override_date = $2::date`,
		employeeID, date,
	)
	if err != nil {
		return fmt.Errorf("failed to delete attendance override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrOverrideNotFound
	}
	return nil
}

func (r *overrideRepository) ListByEmployee(ctx context.Context, employeeID string, from, to string) ([]attendance.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overrideColumns + `
		FROM attendance_overrides
		WHERE employee_id = $1 AND override_date BETWEEN $2::date AND $3::date
		ORDER BY override_date`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance overrides: %w", err)
	}
	defer rows.Close()

	var overrides []attendance.Override
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}
