package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

type OverrideServiceImpl struct {
	overrideRepo attendance.OverrideRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewOverrideService(overrideRepo attendance.OverrideRepository, employeeRepo employee.EmployeeRepository) attendance.OverrideService {
	return &OverrideServiceImpl{
		overrideRepo: overrideRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
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

func (s *OverrideServiceImpl) SetOverride(ctx context.Context, req attendance.SetOverrideRequest) (attendance.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OverrideResponse{}, err
	}

	identity, err := requireAdmin(ctx)
	if err != nil {
		return attendance.OverrideResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.OverrideResponse{}, err
	}

	var setBy *string
	if identity.UserID != "" {
		setBy = &identity.UserID
	}

	saved, err := s.overrideRepo.Upsert(ctx, attendance.Override{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     attendance.OverrideStatus(req.Status),
		Note:       req.Note,
		SetBy:      setBy,
	})
	if err != nil {
		return attendance.OverrideResponse{}, err
	}
	return attendance.NewOverrideResponse(saved), nil
}

func (s *OverrideServiceImpl) DeleteOverride(ctx context.Context, employeeID, date string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if _, ok := validator.IsValidDate(date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "must be in YYYY-MM-DD format"}}
	}
	return s.overrideRepo.Delete(ctx, employeeID, date)
}

func (s *OverrideServiceImpl) ListOverrides(ctx context.Context, filter attendance.OverrideFilter) ([]attendance.OverrideResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	var from, to string
	switch {
	case filter.From != nil || filter.To != nil:
		from, to = "0001-01-01", "9999-12-31"
		if filter.From != nil {
			from = *filter.From
		}
		if filter.To != nil {
			to = *filter.To
		}
	case filter.Month != nil && filter.Year != nil:
		cycle, err := payroll.NewCycle(*filter.Month, *filter.Year)
		if err != nil {
			return nil, err
		}
		from, to = cycle.StartDate(), cycle.EndDate()
	default:
		cycle := payroll.CycleOf(s.now())
		from, to = cycle.StartDate(), cycle.EndDate()
	}

	overrides, err := s.overrideRepo.ListByEmployee(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}

	resp := make([]attendance.OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		resp = append(resp, attendance.NewOverrideResponse(o))
	}
	return resp, nil
}
