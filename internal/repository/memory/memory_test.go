package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ employee.EmployeeRepository    = (*EmployeeRepository)(nil)
	_ schedule.ShiftRepository       = (*ShiftRepository)(nil)
	_ attendance.TimeEntryRepository = (*TimeEntryRepository)(nil)
	_ attendance.OverrideRepository  = (*OverrideRepository)(nil)
	_ payroll.PayrollRepository      = (*PayrollRepository)(nil)
	_ database.Transactor            = Transactor{}
)

func TestTimeEntryRepository_SingleOpenSession(t *testing.T) {
	ctx := context.Background()
	repo := NewTimeEntryRepository()

	_, err := repo.Create(ctx, attendance.TimeEntry{EmployeeID: "e1", Date: "2025-03-03", StartTime: "08:00", Status: attendance.EntryStatusOpen})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.TimeEntry{EmployeeID: "e1", Date: "2025-03-03", StartTime: "09:00", Status: attendance.EntryStatusOpen})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	_, err = repo.Create(ctx, attendance.TimeEntry{EmployeeID: "e2", Date: "2025-03-03", StartTime: "09:00", Status: attendance.EntryStatusOpen})
	assert.NoError(t, err)
}

func TestTimeEntryRepository_RangeExcludesOpenAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := NewTimeEntryRepository(
		attendance.TimeEntry{EmployeeID: "e1", Date: "2025-03-04", StartTime: "08:00", Status: attendance.EntryStatusClosed},
		attendance.TimeEntry{EmployeeID: "e1", Date: "2025-03-03", StartTime: "14:00", Status: attendance.EntryStatusClosed},
		attendance.TimeEntry{EmployeeID: "e1", Date: "2025-03-03", StartTime: "08:00", Status: attendance.EntryStatusAutoClosed},
		attendance.TimeEntry{EmployeeID: "e1", Date: "2025-03-05", StartTime: "08:00", Status: attendance.EntryStatusOpen},
		attendance.TimeEntry{EmployeeID: "e1", Date: "2025-03-26", StartTime: "08:00", Status: attendance.EntryStatusClosed},
		attendance.TimeEntry{EmployeeID: "e2", Date: "2025-03-03", StartTime: "08:00", Status: attendance.EntryStatusClosed},
	)

	got, err := repo.ListByEmployeeAndRange(ctx, "e1", "2025-02-26", "2025-03-25")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-03-03", got[0].Date)
	assert.Equal(t, "08:00", got[0].StartTime)
	assert.Equal(t, "14:00", got[1].StartTime)
	assert.Equal(t, "2025-03-04", got[2].Date)
}

func TestTimeEntryRepository_StaleSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	repo := NewTimeEntryRepository(
		attendance.TimeEntry{EmployeeID: "e1", ClockInAt: now.Add(-20 * time.Hour), Status: attendance.EntryStatusOpen},
		attendance.TimeEntry{EmployeeID: "e2", ClockInAt: now.Add(-2 * time.Hour), Status: attendance.EntryStatusOpen},
		attendance.TimeEntry{EmployeeID: "e3", ClockInAt: now.Add(-30 * time.Hour), Status: attendance.EntryStatusClosed},
	)

	got, err := repo.GetStaleOpenSessions(ctx, now.Add(-16*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].EmployeeID)
}

func TestPayrollRepository_RecordLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewPayrollRepository()

	rec := payroll.PayrollRecord{EmployeeID: "e1", PeriodMonth: 3, PeriodYear: 2025, Status: payroll.PayrollStatusDraft}
	created, err := repo.CreatePayrollRecord(ctx, rec)
	require.NoError(t, err)

	_, err = repo.CreatePayrollRecord(ctx, rec)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)

	require.NoError(t, repo.FinalizePayrollRecords(ctx, []string{created.ID}, "admin"))
	paid, err := repo.GetPayrollRecordByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidBy)

	assert.ErrorIs(t, repo.DeletePayrollRecord(ctx, created.ID), payroll.ErrCannotDeletePaidRecord)
	assert.ErrorIs(t, repo.DeletePayrollRecord(ctx, "missing"), payroll.ErrPayrollRecordNotFound)
}
