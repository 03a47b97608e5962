package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/auth"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func requireAdmin(ctx context.Context) (user.Identity, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.Identity{}, err
	}
	if !identity.IsAdmin() {
		return user.Identity{}, user.ErrAdminPrivilegeRequired
	}
	return identity, nil
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &t
}

// GetMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMyProfile(ctx context.Context) (employee.ProfileResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	if identity.EmployeeID == "" {
		return employee.ProfileResponse{}, auth.ErrEmployeeNotLinked
	}

	profile, err := s.employeeRepo.GetByID(ctx, identity.EmployeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.NewProfileResponse(profile), nil
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, id string) (employee.ProfileResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	if !identity.IsAdmin() && identity.EmployeeID != id {
		return employee.ProfileResponse{}, employee.ErrUnauthorized
	}
	if !validator.IsValidUUID(id) {
		return employee.ProfileResponse{}, employee.ErrEmployeeNotFound
	}

	profile, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.NewProfileResponse(profile), nil
}

// CreateProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateProfile(ctx context.Context, req employee.CreateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}
	identity, err := requireAdmin(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = employee.DefaultCurrency
	}
	var email *string
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		e := strings.ToLower(strings.TrimSpace(*req.Email))
		email = &e
	}

	created, err := s.employeeRepo.Create(ctx, employee.Profile{
		UserID:            req.UserID,
		FullName:          strings.TrimSpace(req.FullName),
		Email:             email,
		MonthlyBaseSalary: req.MonthlyBaseSalary,
		Currency:          currency,
		HireDate:          parseDate(req.HireDate),
		LeaveStartDate:    parseDate(req.LeaveStartDate),
		Profession:        req.Profession,
		Role:              role,
		IsActive:          true,
	})
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	if missing := created.MissingPayrollFields(); len(missing) > 0 {
		slog.Info("employee created without payroll data", "employee_id", created.ID, "missing", missing)
	}
	slog.Info("employee created", "employee_id", created.ID, "by", identity.UserID)
	return employee.NewProfileResponse(created), nil
}

// UpdateProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return employee.ProfileResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	// a leave start date must not precede the hire date already on file
	if req.LeaveStartDate != nil && req.HireDate == nil && current.HireDate != nil {
		if d := parseDate(req.LeaveStartDate); d != nil && d.Before(*current.HireDate) {
			return employee.ProfileResponse{}, validator.ValidationErrors{{Field: "leave_start_date", Message: "cannot be before hire_date"}}
		}
	}
	if req.Currency != nil {
		c := strings.ToUpper(*req.Currency)
		req.Currency = &c
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.ProfileResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return employee.NewProfileResponse(updated), nil
}

// ListProfiles implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListProfiles(ctx context.Context, filter employee.ProfileFilter) (employee.ListProfileResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return employee.ListProfileResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	profiles, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListProfileResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := employee.ListProfileResponse{
		Data:       make([]employee.ProfileResponse, 0, len(profiles)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, p := range profiles {
		resp.Data = append(resp.Data, employee.NewProfileResponse(p))
	}
	return resp, nil
}
