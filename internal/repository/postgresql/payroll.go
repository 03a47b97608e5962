package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

const settingsColumns = `
	id, overtime_rates, absence_penalty_amount, apply_absence_penalty,
	attendance_bonus, performance_bonus, geofence_radius,
	workplace_latitude, workplace_longitude, leave_surplus_formula,
	created_at, updated_at`

func scanSettings(row pgx.Row) (payroll.GlobalSettings, error) {
	var s payroll.GlobalSettings
	var ratesBytes []byte
	var formula string
	err := row.Scan(
		&s.ID, &ratesBytes, &s.AbsencePenaltyAmount, &s.ApplyAbsencePenalty,
		&s.AttendanceBonus, &s.PerformanceBonus, &s.GeofenceRadius,
		&s.WorkplaceLatitude, &s.WorkplaceLongitude, &formula,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.GlobalSettings{}, err
	}
	if err := json.Unmarshal(ratesBytes, &s.OvertimeRates); err != nil {
		return payroll.GlobalSettings{}, fmt.Errorf("failed to decode overtime rates: %w", err)
	}
	s.LeaveSurplusFormula = leave.SurplusFormula(formula)
	return s, nil
}

func (r *payrollRepository) GetSettings(ctx context.Context) (payroll.GlobalSettings, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSettings(q.QueryRow(ctx, "SELECT "+settingsColumns+" FROM payroll_settings WHERE singleton"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.GlobalSettings{}, payroll.ErrPayrollSettingsNotFound
		}
		return payroll.GlobalSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.GlobalSettings) (payroll.GlobalSettings, error) {
	q := GetQuerier(ctx, r.db)

	ratesJSON, err := json.Marshal(settings.OvertimeRates)
	if err != nil {
		return payroll.GlobalSettings{}, fmt.Errorf("failed to encode overtime rates: %w", err)
	}

	query := `
		INSERT INTO payroll_settings (
			overtime_rates, absence_penalty_amount, apply_absence_penalty,
			attendance_bonus, performance_bonus, geofence_radius,
			workplace_latitude, workplace_longitude, leave_surplus_formula
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (singleton) DO UPDATE SET
			overtime_rates = EXCLUDED.overtime_rates,
			absence_penalty_amount = EXCLUDED.absence_penalty_amount,
			apply_absence_penalty = EXCLUDED.apply_absence_penalty,
			attendance_bonus = EXCLUDED.attendance_bonus,
			performance_bonus = EXCLUDED.performance_bonus,
			geofence_radius = EXCLUDED.geofence_radius,
			workplace_latitude = EXCLUDED.workplace_latitude,
			workplace_longitude = EXCLUDED.workplace_longitude,
			leave_surplus_formula = EXCLUDED.leave_surplus_formula,
			updated_at = NOW()
		RETURNING ` + settingsColumns

	s, err := scanSettings(q.QueryRow(ctx, query,
		ratesJSON, settings.AbsencePenaltyAmount, settings.ApplyAbsencePenalty,
		settings.AttendanceBonus, settings.PerformanceBonus, settings.GeofenceRadius,
		settings.WorkplaceLatitude, settings.WorkplaceLongitude, string(settings.LeaveSurplusFormula),
	))
	if err != nil {
		return payroll.GlobalSettings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}
	return s, nil
}

// ========== PAYROLL RECORDS ==========

const recordColumns = `
	pr.id, pr.employee_id, pr.period_month, pr.period_year, pr.currency, pr.base_salary,
	pr.prorated_base_salary, pr.total_allowances, pr.total_deductions,
	pr.allowances_detail, pr.deductions_detail,
	pr.total_work_days, pr.workable_days, pr.unjustified_days,
	pr.total_overtime_minutes, pr.overtime_amount, pr.gross_salary, pr.net_salary,
	pr.breakdown, pr.status, pr.paid_at, pr.paid_by, pr.notes, pr.created_at, pr.updated_at,
	e.full_name`

func scanRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var allowancesBytes, deductionsBytes, breakdownBytes []byte
	var status string
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &rec.Currency, &rec.BaseSalary,
		&rec.ProratedBaseSalary, &rec.TotalAllowances, &rec.TotalDeductions,
		&allowancesBytes, &deductionsBytes,
		&rec.TotalWorkDays, &rec.WorkableDays, &rec.UnjustifiedDays,
		&rec.TotalOvertimeMinutes, &rec.OvertimeAmount, &rec.GrossSalary, &rec.NetSalary,
		&breakdownBytes, &status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	rec.Status = payroll.PayrollStatus(status)

	_ = json.Unmarshal(allowancesBytes, &rec.AllowancesDetail)
	_ = json.Unmarshal(deductionsBytes, &rec.DeductionsDetail)
	if len(breakdownBytes) > 0 {
		var b payroll.Breakdown
		if err := json.Unmarshal(breakdownBytes, &b); err == nil {
			rec.Breakdown = &b
		}
	}
	return rec, nil
}

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	allowancesJSON, _ := json.Marshal(record.AllowancesDetail)
	deductionsJSON, _ := json.Marshal(record.DeductionsDetail)
	var breakdownJSON []byte
	if record.Breakdown != nil {
		var err error
		if breakdownJSON, err = json.Marshal(record.Breakdown); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to encode breakdown: %w", err)
		}
	}

	query := `
		WITH pr AS (
			INSERT INTO payroll_records (
				employee_id, period_month, period_year, currency, base_salary,
				prorated_base_salary, total_allowances, total_deductions,
				allowances_detail, deductions_detail,
				total_work_days, workable_days, unjustified_days,
				total_overtime_minutes, overtime_amount, gross_salary, net_salary,
				breakdown, status, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
			RETURNING *
		)
		SELECT ` + recordColumns + `
		FROM pr
		JOIN employees e ON pr.employee_id = e.id
	`

	rec, err := scanRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.Currency, record.BaseSalary,
		record.ProratedBaseSalary, record.TotalAllowances, record.TotalDeductions,
		allowancesJSON, deductionsJSON,
		record.TotalWorkDays, record.WorkableDays, record.UnjustifiedDays,
		record.TotalOvertimeMinutes, record.OvertimeAmount, record.GrossSalary, record.NetSalary,
		breakdownJSON, string(record.Status), record.Notes,
	))
	if err != nil {
		if isUniqueViolation(err, "") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE TRUE
	`
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	sortColumn := "pr.created_at"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"created_at":    "pr.created_at",
			"period":        "pr.period_year DESC, pr.period_month",
			"employee_name": "e.full_name",
			"net_salary":    "pr.net_salary",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		recordColumns, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, totalCount, nil
}

func (r *payrollRepository) FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'paid', paid_at = NOW(), paid_by = NULLIF($1, '')::uuid, updated_at = NOW()
		WHERE id = ANY($2) AND status = 'draft'
	`

	if _, err := q.Exec(ctx, query, paidBy, ids); err != nil {
		return fmt.Errorf("failed to finalize payroll records: %w", err)
	}
	return nil
}

func (r *payrollRepository) DeletePayrollRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var status string
	err := q.QueryRow(ctx, `SELECT status FROM payroll_records WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to check payroll record status: %w", err)
	}
	if status == string(payroll.PayrollStatusPaid) {
		return payroll.ErrCannotDeletePaidRecord
	}

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1 AND status = 'draft'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

// ========== AGGREGATIONS ==========

func (r *payrollRepository) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total_employees,
			COALESCE(SUM(base_salary), 0) as total_base_salary,
			COALESCE(SUM(total_allowances), 0) as total_allowances,
			COALESCE(SUM(total_deductions), 0) as total_deductions,
			COALESCE(SUM(overtime_amount), 0) as total_overtime,
			COALESCE(SUM(gross_salary), 0) as total_gross_salary,
			COALESCE(SUM(net_salary), 0) as total_net_salary,
			COUNT(*) FILTER (WHERE status = 'draft') as draft_count,
			COUNT(*) FILTER (WHERE status = 'paid') as paid_count
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
	`

	var summary payroll.PayrollSummaryResponse
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.TotalEmployees, &summary.TotalBaseSalary, &summary.TotalAllowances,
		&summary.TotalDeductions, &summary.TotalOvertime,
		&summary.TotalGrossSalary, &summary.TotalNetSalary, &summary.DraftCount, &summary.PaidCount,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	summary.PeriodMonth = month
	summary.PeriodYear = year

	return summary, nil
}
