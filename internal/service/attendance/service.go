package attendance

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
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/statestore"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/utils"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

// StaleSessionAge is how long a session may stay open before it is auto-closed.
const StaleSessionAge = 16 * time.Hour

// defaultSessionLength closes shift-less sessions that were never clocked out.
const defaultSessionLength = 8 * time.Hour

var _ attendance.TimeEntryService = (*TimeEntryServiceImpl)(nil)

type TimeEntryServiceImpl struct {
	timeEntryRepo attendance.TimeEntryRepository
	employeeRepo  employee.EmployeeRepository
	shiftRepo     schedule.ShiftRepository
	payrollRepo   payroll.PayrollRepository
	state         statestore.Store
	loc           *time.Location
	now           func() time.Time
}

func NewTimeEntryService(
	timeEntryRepo attendance.TimeEntryRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo schedule.ShiftRepository,
	payrollRepo payroll.PayrollRepository,
	state statestore.Store,
	loc *time.Location,
) *TimeEntryServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeEntryServiceImpl{
		timeEntryRepo: timeEntryRepo,
		employeeRepo:  employeeRepo,
		shiftRepo:     shiftRepo,
		payrollRepo:   payrollRepo,
		state:         state,
		loc:           loc,
		now:           time.Now,
	}
}

func (s *TimeEntryServiceImpl) employeeIdentity(ctx context.Context) (user.Identity, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.Identity{}, err
	}
	if identity.EmployeeID == "" {
		return user.Identity{}, auth.ErrEmployeeNotLinked
	}
	return identity, nil
}

func (s *TimeEntryServiceImpl) settings(ctx context.Context) (payroll.GlobalSettings, error) {
	settings, err := s.payrollRepo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollSettingsNotFound) {
			return payroll.DefaultSettings(), nil
		}
		return payroll.GlobalSettings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}
	return settings, nil
}

func (s *TimeEntryServiceImpl) shiftFor(ctx context.Context, shiftID *string) (*schedule.Shift, error) {
	if shiftID == nil || *shiftID == "" {
		return nil, nil
	}
	shift, err := s.shiftRepo.GetByID(ctx, *shiftID)
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// ClockIn implements attendance.TimeEntryService.
func (s *TimeEntryServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	identity, err := s.employeeIdentity(ctx)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	profile, err := s.employeeRepo.GetByID(ctx, identity.EmployeeID)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}
	if !profile.IsActive {
		return attendance.TimeEntryResponse{}, employee.ErrEmployeeNotFound
	}

	if _, err := s.timeEntryRepo.GetOpenSession(ctx, identity.EmployeeID); err == nil {
		return attendance.TimeEntryResponse{}, attendance.ErrAlreadyClockedIn
	} else if !errors.Is(err, attendance.ErrTimeEntryNotFound) {
		return attendance.TimeEntryResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}

	if _, err := s.shiftFor(ctx, req.ShiftID); err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	settings, err := s.settings(ctx)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}
	if settings.GeofenceEnabled() && req.Latitude != nil && req.Longitude != nil {
		if !utils.WithinRadius(*req.Latitude, *req.Longitude,
			*settings.WorkplaceLatitude, *settings.WorkplaceLongitude, settings.GeofenceRadius) {
			return attendance.TimeEntryResponse{}, attendance.ErrOutsideAllowedRadius
		}
	}

	nowUTC := s.now().UTC()
	nowLocal := nowUTC.In(s.loc)

	entry, err := s.timeEntryRepo.Create(ctx, attendance.TimeEntry{
		EmployeeID:      identity.EmployeeID,
		Date:            nowLocal.Format(validator.DateLayout),
		StartTime:       nowLocal.Format(validator.ClockLayout),
		ClockInAt:       nowUTC,
		ShiftID:         req.ShiftID,
		IsPublicHoliday: req.IsPublicHoliday,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Status:          attendance.EntryStatusOpen,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			return attendance.TimeEntryResponse{}, err
		}
		return attendance.TimeEntryResponse{}, fmt.Errorf("failed to create time entry: %w", err)
	}

	saveSessionPointer(ctx, s.state, identity.EmployeeID, sessionPointer{EntryID: entry.ID, ClockInAt: entry.ClockInAt})

	return attendance.NewTimeEntryResponse(entry), nil
}

// ClockOut implements attendance.TimeEntryService.
func (s *TimeEntryServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	identity, err := s.employeeIdentity(ctx)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	entry, err := s.openSession(ctx, identity.EmployeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrTimeEntryNotFound) {
			return attendance.TimeEntryResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.TimeEntryResponse{}, err
	}

	shift, err := s.shiftFor(ctx, entry.ShiftID)
	if err != nil && !errors.Is(err, schedule.ErrShiftNotFound) {
		return attendance.TimeEntryResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	if err := s.close(ctx, &entry, s.now().UTC(), shift, attendance.EntryStatusClosed); err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	return attendance.NewTimeEntryResponse(entry), nil
}

func (s *TimeEntryServiceImpl) close(ctx context.Context, entry *attendance.TimeEntry, endAt time.Time, shift *schedule.Shift, status attendance.EntryStatus) error {
	duration := int(endAt.Sub(entry.ClockInAt).Minutes())
	if duration < 0 {
		duration = 0
	}
	endClock := endAt.In(s.loc).Format(validator.ClockLayout)

	entry.ClockOutAt = &endAt
	entry.EndTime = &endClock
	entry.Duration = duration
	entry.OvertimeDuration = ComputeOvertime(entry.StartTime, duration, shift)
	entry.Status = status

	if err := s.timeEntryRepo.Update(ctx, *entry); err != nil {
		return fmt.Errorf("failed to close time entry: %w", err)
	}
	ClearSessionPointer(ctx, s.state, entry.EmployeeID)
	return nil
}

// openSession resolves the running session through the recovery pointer,
// falling back to the repository when the pointer is missing or stale.
func (s *TimeEntryServiceImpl) openSession(ctx context.Context, employeeID string) (attendance.TimeEntry, error) {
	if p, ok := loadSessionPointer(ctx, s.state, employeeID); ok {
		entry, err := s.timeEntryRepo.GetByID(ctx, p.EntryID)
		if err == nil && entry.IsOpen() && entry.EmployeeID == employeeID {
			return entry, nil
		}
		ClearSessionPointer(ctx, s.state, employeeID)
	}

	entry, err := s.timeEntryRepo.GetOpenSession(ctx, employeeID)
	if err != nil {
		return attendance.TimeEntry{}, err
	}
	saveSessionPointer(ctx, s.state, employeeID, sessionPointer{EntryID: entry.ID, ClockInAt: entry.ClockInAt})
	return entry, nil
}

// GetOpenSession implements attendance.TimeEntryService.
func (s *TimeEntryServiceImpl) GetOpenSession(ctx context.Context) (attendance.TimeEntryResponse, error) {
	identity, err := s.employeeIdentity(ctx)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	entry, err := s.openSession(ctx, identity.EmployeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrTimeEntryNotFound) {
			return attendance.TimeEntryResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.TimeEntryResponse{}, err
	}
	return attendance.NewTimeEntryResponse(entry), nil
}

// cycleRange resolves a month/year pair to its pay-cycle bounds, defaulting to
// the cycle containing today.
func (s *TimeEntryServiceImpl) cycleRange(month, year *int) (string, string, error) {
	cycle := payroll.CycleOf(s.now().In(s.loc))
	if month != nil && year != nil {
		c, err := payroll.NewCycle(*month, *year)
		if err != nil {
			return "", "", err
		}
		cycle = c
	}
	return cycle.StartDate(), cycle.EndDate(), nil
}

func (s *TimeEntryServiceImpl) GetMyEntries(ctx context.Context, filter attendance.MyTimeEntryFilter) (attendance.ListTimeEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListTimeEntryResponse{}, err
	}

	identity, err := s.employeeIdentity(ctx)
	if err != nil {
		return attendance.ListTimeEntryResponse{}, err
	}

	from, to, err := s.cycleRange(filter.Month, filter.Year)
	if err != nil {
		return attendance.ListTimeEntryResponse{}, err
	}

	return s.list(ctx, attendance.TimeEntryFilter{
		EmployeeID: &identity.EmployeeID,
		From:       &from,
		To:         &to,
		Page:       filter.Page,
		Limit:      filter.Limit,
	})
}

func (s *TimeEntryServiceImpl) ListEntries(ctx context.Context, filter attendance.TimeEntryFilter) (attendance.ListTimeEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListTimeEntryResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.ListTimeEntryResponse{}, err
	}
	if !identity.IsAdmin() {
		return attendance.ListTimeEntryResponse{}, user.ErrAdminPrivilegeRequired
	}

	if filter.From == nil && filter.To == nil {
		from, to, err := s.cycleRange(filter.Month, filter.Year)
		if err != nil {
			return attendance.ListTimeEntryResponse{}, err
		}
		filter.From, filter.To = &from, &to
	}
	return s.list(ctx, filter)
}

func (s *TimeEntryServiceImpl) list(ctx context.Context, filter attendance.TimeEntryFilter) (attendance.ListTimeEntryResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}

	entries, total, err := s.timeEntryRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListTimeEntryResponse{}, fmt.Errorf("failed to list time entries: %w", err)
	}

	resp := attendance.ListTimeEntryResponse{
		Data:       make([]attendance.TimeEntryResponse, 0, len(entries)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, e := range entries {
		resp.Data = append(resp.Data, attendance.NewTimeEntryResponse(e))
		resp.TotalMinutes += e.Duration
		resp.TotalOvertime += e.OvertimeDuration
	}
	return resp, nil
}

func (s *TimeEntryServiceImpl) GetEntry(ctx context.Context, id string) (attendance.TimeEntryResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	entry, err := s.timeEntryRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}
	if !identity.IsAdmin() && entry.EmployeeID != identity.EmployeeID {
		return attendance.TimeEntryResponse{}, attendance.ErrUnauthorized
	}
	return attendance.NewTimeEntryResponse(entry), nil
}

// UpdateEntry implements attendance.TimeEntryService.
func (s *TimeEntryServiceImpl) UpdateEntry(ctx context.Context, req attendance.UpdateTimeEntryRequest) (attendance.TimeEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}
	if !identity.IsAdmin() {
		return attendance.TimeEntryResponse{}, user.ErrAdminPrivilegeRequired
	}

	entry, err := s.timeEntryRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}
	if entry.IsOpen() {
		return attendance.TimeEntryResponse{}, attendance.ErrEntryStillOpen
	}

	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = req.EndTime
	}
	if req.ShiftID != nil {
		if *req.ShiftID == "" {
			entry.ShiftID = nil
		} else {
			entry.ShiftID = req.ShiftID
		}
	}
	if req.IsPublicHoliday != nil {
		entry.IsPublicHoliday = *req.IsPublicHoliday
	}
	if req.Note != nil {
		entry.Note = req.Note
	}

	if entry.EndTime == nil || *entry.EndTime == entry.StartTime {
		return attendance.TimeEntryResponse{}, attendance.ErrInvalidTimeRange
	}

	startAt, endAt, duration, err := clockRange(entry.Date, entry.StartTime, *entry.EndTime, s.loc)
	if err != nil {
		return attendance.TimeEntryResponse{}, attendance.ErrInvalidTimeRange
	}

	shift, err := s.shiftFor(ctx, entry.ShiftID)
	if err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	startUTC, endUTC := startAt.UTC(), endAt.UTC()
	entry.ClockInAt = startUTC
	entry.ClockOutAt = &endUTC
	entry.Duration = duration
	entry.OvertimeDuration = ComputeOvertime(entry.StartTime, duration, shift)

	if err := s.timeEntryRepo.Update(ctx, entry); err != nil {
		return attendance.TimeEntryResponse{}, err
	}

	slog.Info("time entry corrected", "entry_id", entry.ID, "employee_id", entry.EmployeeID, "by", identity.UserID)
	return attendance.NewTimeEntryResponse(entry), nil
}

func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, id string) error {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return err
	}
	if !identity.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}

	entry, err := s.timeEntryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.timeEntryRepo.Delete(ctx, id); err != nil {
		return err
	}
	if entry.IsOpen() {
		ClearSessionPointer(ctx, s.state, entry.EmployeeID)
	}
	return nil
}

// AutoCloseStaleSessions closes sessions left open longer than StaleSessionAge.
// Each is closed at its shift's scheduled end, or after defaultSessionLength
// when it has no usable shift.
func (s *TimeEntryServiceImpl) AutoCloseStaleSessions(ctx context.Context) (int, error) {
	now := s.now().UTC()
	stale, err := s.timeEntryRepo.GetStaleOpenSessions(ctx, now.Add(-StaleSessionAge))
	if err != nil {
		return 0, fmt.Errorf("failed to get stale sessions: %w", err)
	}

	closed := 0
	for _, entry := range stale {
		endAt := entry.ClockInAt.Add(defaultSessionLength)

		shift, err := s.shiftFor(ctx, entry.ShiftID)
		if err != nil {
			slog.Warn("auto-close: shift lookup failed", "entry_id", entry.ID, "error", err)
		}
		if shift != nil {
			day, perr := time.ParseInLocation(validator.DateLayout, entry.Date, s.loc)
			if perr == nil {
				if end, serr := scheduledEnd(day, entry.StartTime, *shift, s.loc); serr == nil && end.After(entry.ClockInAt) {
					endAt = end.UTC()
				}
			}
		}

		note := "auto-closed: no clock-out recorded"
		entry.Note = &note
		if err := s.close(ctx, &entry, endAt, shift, attendance.EntryStatusAutoClosed); err != nil {
			slog.Error("auto-close: failed to close session", "entry_id", entry.ID, "employee_id", entry.EmployeeID, "error", err)
			continue
		}
		closed++
	}
	return closed, nil
}
