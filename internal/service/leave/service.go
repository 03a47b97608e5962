package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
	calculator   *AccrualCalculator
	now          func() time.Time
}

func NewLeaveService(
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	calculator *AccrualCalculator,
) leave.LeaveService {
	return &LeaveServiceImpl{
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
		calculator:   calculator,
		now:          time.Now,
	}
}

func (s *LeaveServiceImpl) GetBalance(ctx context.Context, req leave.BalanceRequest) (leave.Balance, error) {
	if err := req.Validate(); err != nil {
		return leave.Balance{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.Balance{}, err
	}
	if !identity.IsAdmin() && identity.EmployeeID != req.EmployeeID {
		return leave.Balance{}, user.ErrInsufficientPermissions
	}

	asOf := s.now()
	if req.AsOf != nil {
		asOf, _ = validator.IsValidDate(*req.AsOf)
	}
	return s.balanceFor(ctx, req.EmployeeID, asOf)
}

func (s *LeaveServiceImpl) GetMyBalance(ctx context.Context) (leave.Balance, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.Balance{}, err
	}
	if identity.EmployeeID == "" {
		return leave.Balance{}, user.ErrEmployeeIDRequired
	}
	return s.balanceFor(ctx, identity.EmployeeID, s.now())
}

func (s *LeaveServiceImpl) balanceFor(ctx context.Context, employeeID string, asOf time.Time) (leave.Balance, error) {
	profile, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.Balance{}, err
	}

	settings, err := s.payrollRepo.GetSettings(ctx)
	if err != nil {
		if !errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			return leave.Balance{}, fmt.Errorf("failed to get payroll settings: %w", err)
		}
		settings = payroll.DefaultSettings()
	}

	balance, err := s.calculator.Calculate(leave.AccrualInput{
		HireDate:       profile.HireDate,
		LeaveStartDate: profile.LeaveStartDate,
		AsOf:           asOf,
		Formula:        settings.LeaveSurplusFormula,
	})
	if err != nil {
		return leave.Balance{}, err
	}
	balance.EmployeeID = profile.ID
	return balance, nil
}
