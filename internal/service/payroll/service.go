package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/auth"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/storage"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent per-employee calculations during generation.
const DefaultWorkers = 4

type PayrollServiceImpl struct {
	payrollRepo   payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	timeEntryRepo attendance.TimeEntryRepository
	overrideRepo  attendance.OverrideRepository
	shiftRepo     schedule.ShiftRepository
	transactor    database.Transactor
	calculator    *Calculator
	storage       storage.FileStorage
	workers       int
	loc           *time.Location
	now           func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	timeEntryRepo attendance.TimeEntryRepository,
	overrideRepo attendance.OverrideRepository,
	shiftRepo schedule.ShiftRepository,
	transactor database.Transactor,
	calculator *Calculator,
	fileStorage storage.FileStorage,
	workers int,
	loc *time.Location,
) *PayrollServiceImpl {
	if calculator == nil {
		calculator = NewCalculator(nil, nil)
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		timeEntryRepo: timeEntryRepo,
		overrideRepo:  overrideRepo,
		shiftRepo:     shiftRepo,
		transactor:    transactor,
		calculator:    calculator,
		storage:       fileStorage,
		workers:       workers,
		loc:           loc,
		now:           time.Now,
	}
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

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

// today is the current civil date in the configured timezone.
func (s *PayrollServiceImpl) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// settings returns the stored settings, or the defaults when none exist.
func (s *PayrollServiceImpl) settings(ctx context.Context) (payroll.GlobalSettings, bool, error) {
	settings, err := s.payrollRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			return payroll.DefaultSettings(), true, nil
		}
		return payroll.GlobalSettings{}, false, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return settings, false, nil
}

// ========== SETTINGS ==========

func (s *PayrollServiceImpl) GetSettings(ctx context.Context) (payroll.SettingsResponse, error) {
	if _, err := jwt.IdentityFromContext(ctx); err != nil {
		return payroll.SettingsResponse{}, err
	}

	settings, isDefault, err := s.settings(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	return payroll.NewSettingsResponse(settings, isDefault), nil
}

func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}
	identity, err := requireAdmin(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	current, _, err := s.settings(ctx)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}

	updated, err := s.payrollRepo.UpsertSettings(ctx, req.Apply(current))
	if err != nil {
		return payroll.SettingsResponse{}, fmt.Errorf("failed to save payroll settings: %w", err)
	}

	slog.Info("payroll settings updated", "by", identity.UserID)
	return payroll.NewSettingsResponse(updated, false), nil
}

// ========== CALCULATION ==========

// cycleData is what every employee's calculation in a cycle shares.
type cycleData struct {
	cycle    payroll.Cycle
	settings payroll.GlobalSettings
	shifts   []schedule.Shift
	asOf     time.Time
}

func (s *PayrollServiceImpl) loadCycleData(ctx context.Context, cycle payroll.Cycle) (cycleData, error) {
	settings, _, err := s.settings(ctx)
	if err != nil {
		return cycleData{}, err
	}
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return cycleData{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	return cycleData{cycle: cycle, settings: settings, shifts: shifts, asOf: s.today()}, nil
}

func (s *PayrollServiceImpl) calculate(ctx context.Context, profile employee.Profile, data cycleData) (payroll.Breakdown, error) {
	from, to := data.cycle.StartDate(), data.cycle.EndDate()

	entries, err := s.timeEntryRepo.ListByEmployeeAndRange(ctx, profile.ID, from, to)
	if err != nil {
		return payroll.Breakdown{}, fmt.Errorf("failed to load time entries for employee %s: %w", profile.ID, err)
	}
	overrides, err := s.overrideRepo.ListByEmployee(ctx, profile.ID, from, to)
	if err != nil {
		return payroll.Breakdown{}, fmt.Errorf("failed to load overrides for employee %s: %w", profile.ID, err)
	}

	return s.calculator.Calculate(CalculationInput{
		Profile:   profile,
		Entries:   entries,
		Shifts:    data.shifts,
		Settings:  data.settings,
		Overrides: overrides,
		Cycle:     data.cycle,
		AsOf:      data.asOf,
	}), nil
}

// Preview implements payroll.PayrollService.
func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewRequest) (payroll.Breakdown, error) {
	if err := req.Validate(); err != nil {
		return payroll.Breakdown{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.Breakdown{}, err
	}
	employeeID := req.EmployeeID
	if employeeID == "" {
		if identity.EmployeeID == "" {
			return payroll.Breakdown{}, auth.ErrEmployeeNotLinked
		}
		employeeID = identity.EmployeeID
	}
	if !identity.IsAdmin() && employeeID != identity.EmployeeID {
		return payroll.Breakdown{}, user.ErrInsufficientPermissions
	}

	cycle, err := payroll.NewCycle(req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.Breakdown{}, err
	}

	profile, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.Breakdown{}, err
	}

	data, err := s.loadCycleData(ctx, cycle)
	if err != nil {
		return payroll.Breakdown{}, err
	}
	return s.calculate(ctx, profile, data)
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}
	identity, err := requireAdmin(ctx)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	cycle, err := payroll.NewCycle(req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	resp, err := s.generate(ctx, cycle, req.EmployeeIDs, req.Regenerate)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}
	slog.Info("payroll generated",
		"cycle", cycle.String(),
		"generated", len(resp.Generated),
		"skipped", len(resp.Skipped),
		"by", identity.UserID,
	)
	return resp, nil
}

// GenerateCycle implements payroll.PayrollService.
func (s *PayrollServiceImpl) GenerateCycle(ctx context.Context, cycle payroll.Cycle) (payroll.GeneratePayrollResponse, error) {
	return s.generate(ctx, cycle, nil, false)
}

type generateOutcome struct {
	record *payroll.PayrollRecord
	skip   *payroll.SkippedEmployee
}

func (s *PayrollServiceImpl) generate(ctx context.Context, cycle payroll.Cycle, employeeIDs []string, regenerate bool) (payroll.GeneratePayrollResponse, error) {
	profiles, err := s.employeeRepo.GetActive(ctx, employeeIDs)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	data, err := s.loadCycleData(ctx, cycle)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	outcomes := make([]generateOutcome, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, profile := range profiles {
		i, profile := i, profile
		g.Go(func() error {
			outcome, err := s.generateOne(gctx, profile, data, regenerate)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	resp := payroll.GeneratePayrollResponse{
		PeriodMonth: cycle.Month,
		PeriodYear:  cycle.Year,
		Generated:   []payroll.PayrollRecordResponse{},
		Skipped:     []payroll.SkippedEmployee{},
	}
	for _, o := range outcomes {
		switch {
		case o.record != nil:
			resp.Generated = append(resp.Generated, payroll.NewPayrollRecordResponse(*o.record))
		case o.skip != nil:
			resp.Skipped = append(resp.Skipped, *o.skip)
		}
	}
	return resp, nil
}

func (s *PayrollServiceImpl) generateOne(ctx context.Context, profile employee.Profile, data cycleData, regenerate bool) (generateOutcome, error) {
	skip := func(reason string, missing []string) generateOutcome {
		return generateOutcome{skip: &payroll.SkippedEmployee{
			EmployeeID:    profile.ID,
			EmployeeName:  profile.FullName,
			Reason:        reason,
			MissingFields: missing,
		}}
	}

	existing, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, profile.ID, data.cycle.Month, data.cycle.Year)
	hasExisting := err == nil
	if err != nil && !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return generateOutcome{}, fmt.Errorf("failed to check existing payroll record: %w", err)
	}
	if hasExisting {
		if existing.Status == payroll.PayrollStatusPaid {
			return skip(payroll.SkipReasonPaid, nil), nil
		}
		if !regenerate {
			return skip(payroll.SkipReasonExists, nil), nil
		}
	}

	breakdown, err := s.calculate(ctx, profile, data)
	if err != nil {
		return generateOutcome{}, err
	}
	if breakdown.Status == payroll.BreakdownInsufficientData {
		return skip(payroll.SkipReasonInsufficientData, breakdown.MissingFields), nil
	}

	record := payroll.NewPayrollRecord(profile.ID, breakdown)
	record.EmployeeName = &profile.FullName

	var created payroll.PayrollRecord
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if hasExisting {
			if err := s.payrollRepo.DeletePayrollRecord(txCtx, existing.ID); err != nil {
				return err
			}
		}
		var err error
		created, err = s.payrollRepo.CreatePayrollRecord(txCtx, record)
		return err
	})
	if err != nil {
		// a concurrent run stored the same period first
		if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
			return skip(payroll.SkipReasonExists, nil), nil
		}
		if errors.Is(err, payroll.ErrCannotDeletePaidRecord) {
			return skip(payroll.SkipReasonPaid, nil), nil
		}
		return generateOutcome{}, fmt.Errorf("failed to create payroll record for employee %s: %w", profile.ID, err)
	}
	return generateOutcome{record: &created}, nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !identity.IsAdmin() && record.EmployeeID != identity.EmployeeID {
		return payroll.PayrollRecordResponse{}, user.ErrInsufficientPermissions
	}
	return payroll.NewPayrollRecordResponse(record), nil
}

// ListPayrollRecords implements payroll.PayrollService. Employees only ever
// see their own records.
func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}
	if !identity.IsAdmin() {
		if identity.EmployeeID == "" {
			return payroll.ListPayrollRecordResponse{}, auth.ErrEmployeeNotLinked
		}
		filter.EmployeeID = &identity.EmployeeID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, totalCount, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		// the list view omits the full breakdown
		r.Breakdown = nil
		data = append(data, payroll.NewPayrollRecordResponse(r))
	}
	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) FinalizePayroll(ctx context.Context, req payroll.FinalizePayrollRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	identity, err := requireAdmin(ctx)
	if err != nil {
		return err
	}

	if err := s.payrollRepo.FinalizePayrollRecords(ctx, req.RecordIDs, identity.UserID); err != nil {
		return fmt.Errorf("failed to finalize payroll records: %w", err)
	}
	slog.Info("payroll finalized", "records", len(req.RecordIDs), "by", identity.UserID)
	return nil
}

func (s *PayrollServiceImpl) DeletePayrollRecord(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.payrollRepo.DeletePayrollRecord(ctx, id)
}

// ========== SUMMARY ==========

func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}
	if _, err := payroll.NewCycle(month, year); err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}
	return s.payrollRepo.GetPayrollSummary(ctx, month, year)
}
