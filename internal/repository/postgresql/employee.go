package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const profileColumns = `
	id, user_id, full_name, email, monthly_base_salary, currency, hire_date,
	leave_start_date, profession, role, is_active, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanProfile(row pgx.Row) (employee.Profile, error) {
	var p employee.Profile
	var role string
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.Email, &p.MonthlyBaseSalary, &p.Currency, &p.HireDate,
		&p.LeaveStartDate, &p.Profession, &role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Role = user.Role(role)
	return p, err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || strings.Contains(pgErr.ConstraintName, constraint)
}

func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Profile, error) {
	q := GetQuerier(ctx, e.db)

	p, err := scanProfile(q.QueryRow(ctx, "SELECT "+profileColumns+" FROM employees WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrEmployeeNotFound
		}
		return employee.Profile{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return p, nil
}

func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Profile, error) {
	q := GetQuerier(ctx, e.db)

	p, err := scanProfile(q.QueryRow(ctx, "SELECT "+profileColumns+" FROM employees WHERE user_id = $1", userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrEmployeeNotFound
		}
		return employee.Profile{}, fmt.Errorf("failed to get employee by user id %s: %w", userID, err)
	}
	return p, nil
}

func (e *employeeRepositoryImpl) Create(ctx context.Context, profile employee.Profile) (employee.Profile, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			user_id, full_name, email, monthly_base_salary, currency, hire_date,
			leave_start_date, profession, role, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + profileColumns

	created, err := scanProfile(q.QueryRow(ctx, query,
		profile.UserID, profile.FullName, profile.Email, profile.MonthlyBaseSalary, profile.Currency,
		profile.HireDate, profile.LeaveStartDate, profile.Profession, string(profile.Role), profile.IsActive,
	))
	if err != nil {
		switch {
		case isUniqueViolation(err, "email"):
			return employee.Profile{}, employee.ErrEmailExists
		case isUniqueViolation(err, "user_id"):
			return employee.Profile{}, employee.ErrUserAlreadyLinked
		}
		return employee.Profile{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateProfileRequest) error {
	q := GetQuerier(ctx, e.db)

	updates := make(map[string]interface{})

	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.MonthlyBaseSalary != nil {
		updates["monthly_base_salary"] = *req.MonthlyBaseSalary
	}
	if req.Currency != nil {
		updates["currency"] = strings.ToUpper(*req.Currency)
	}
	if req.HireDate != nil {
		if *req.HireDate == "" {
			updates["hire_date"] = nil
		} else {
			parsed, _ := time.Parse(validator.DateLayout, *req.HireDate)
			updates["hire_date"] = parsed
		}
	}
	if req.LeaveStartDate != nil {
		if *req.LeaveStartDate == "" {
			updates["leave_start_date"] = nil
		} else {
			parsed, _ := time.Parse(validator.DateLayout, *req.LeaveStartDate)
			updates["leave_start_date"] = parsed
		}
	}
	if req.Profession != nil {
		if *req.Profession == "" {
			updates["profession"] = nil
		} else {
			updates["profession"] = *req.Profession
		}
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d RETURNING id", strings.Join(setClauses, ", "), i)
	args = append(args, req.ID)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee with id %s: %w", req.ID, err)
	}
	return nil
}

func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.ProfileFilter) ([]employee.Profile, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active")
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, profileColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var profiles []employee.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// GetActive returns active profiles, restricted to ids when any are given.
func (e *employeeRepositoryImpl) GetActive(ctx context.Context, ids []string) ([]employee.Profile, error) {
	q := GetQuerier(ctx, e.db)

	query := "SELECT " + profileColumns + " FROM employees WHERE is_active"
	args := []interface{}{}
	if len(ids) > 0 {
		query += " AND id = ANY($1)"
		args = append(args, ids)
	}
	query += " ORDER BY full_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	var profiles []employee.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
