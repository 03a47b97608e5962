package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayrollRepository struct {
	mu       sync.RWMutex
	settings *payroll.GlobalSettings
	records  map[string]payroll.PayrollRecord
}

func NewPayrollRepository() *PayrollRepository {
	return &PayrollRepository{records: make(map[string]payroll.PayrollRecord)}
}

func (r *PayrollRepository) GetSettings(_ context.Context) (payroll.GlobalSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.settings == nil {
		return payroll.GlobalSettings{}, payroll.ErrPayrollSettingsNotFound
	}
	return *r.settings, nil
}

func (r *PayrollRepository) UpsertSettings(_ context.Context, settings payroll.GlobalSettings) (payroll.GlobalSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if r.settings == nil {
		settings.ID = uuid.NewString()
		settings.CreatedAt = now
	} else {
		settings.ID = r.settings.ID
		settings.CreatedAt = r.settings.CreatedAt
	}
	settings.UpdatedAt = now
	r.settings = &settings
	return settings, nil
}

func (r *PayrollRepository) CreatePayrollRecord(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.EmployeeID == record.EmployeeID &&
			existing.PeriodMonth == record.PeriodMonth &&
			existing.PeriodYear == record.PeriodYear {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
		}
	}

	now := time.Now()
	record.ID = uuid.NewString()
	record.CreatedAt, record.UpdatedAt = now, now
	if record.Breakdown != nil && record.EmployeeName == nil && record.Breakdown.EmployeeName != "" {
		name := record.Breakdown.EmployeeName
		record.EmployeeName = &name
	}
	r.records[record.ID] = record
	return record, nil
}

func (r *PayrollRepository) GetPayrollRecordByID(_ context.Context, id string) (payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (r *PayrollRepository) GetPayrollRecordByEmployeePeriod(_ context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.PeriodMonth == month && rec.PeriodYear == year {
			return rec, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (r *PayrollRepository) ListPayrollRecords(_ context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []payroll.PayrollRecord
	for _, rec := range r.records {
		switch {
		case filter.PeriodMonth != nil && rec.PeriodMonth != *filter.PeriodMonth:
			continue
		case filter.PeriodYear != nil && rec.PeriodYear != *filter.PeriodYear:
			continue
		case filter.Status != nil && string(rec.Status) != *filter.Status:
			continue
		case filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID:
			continue
		}
		matches = append(matches, rec)
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.PeriodYear != b.PeriodYear {
			return a.PeriodYear > b.PeriodYear
		}
		if a.PeriodMonth != b.PeriodMonth {
			return a.PeriodMonth > b.PeriodMonth
		}
		return a.EmployeeID < b.EmployeeID
	})
	return paginate(matches, filter.Page, filter.Limit, 20), int64(len(matches)), nil
}

func (r *PayrollRepository) FinalizePayrollRecords(_ context.Context, ids []string, paidBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, id := range ids {
		rec, ok := r.records[id]
		if !ok || rec.Status != payroll.PayrollStatusDraft {
			continue
		}
		rec.Status = payroll.PayrollStatusPaid
		rec.PaidAt = &now
		if paidBy != "" {
			by := paidBy
			rec.PaidBy = &by
		}
		rec.UpdatedAt = now
		r.records[id] = rec
	}
	return nil
}

func (r *PayrollRepository) DeletePayrollRecord(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	if rec.Status == payroll.PayrollStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}
	delete(r.records, id)
	return nil
}

func (r *PayrollRepository) GetPayrollSummary(_ context.Context, month, year int) (payroll.PayrollSummaryResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := payroll.PayrollSummaryResponse{
		PeriodMonth:      month,
		PeriodYear:       year,
		TotalBaseSalary:  decimal.Zero,
		TotalAllowances:  decimal.Zero,
		TotalDeductions:  decimal.Zero,
		TotalOvertime:    decimal.Zero,
		TotalGrossSalary: decimal.Zero,
		TotalNetSalary:   decimal.Zero,
	}
	for _, rec := range r.records {
		if rec.PeriodMonth != month || rec.PeriodYear != year {
			continue
		}
		summary.TotalEmployees++
		summary.TotalBaseSalary = summary.TotalBaseSalary.Add(rec.BaseSalary)
		summary.TotalAllowances = summary.TotalAllowances.Add(rec.TotalAllowances)
		summary.TotalDeductions = summary.TotalDeductions.Add(rec.TotalDeductions)
		summary.TotalOvertime = summary.TotalOvertime.Add(rec.OvertimeAmount)
		summary.TotalGrossSalary = summary.TotalGrossSalary.Add(rec.GrossSalary)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(rec.NetSalary)
		switch rec.Status {
		case payroll.PayrollStatusDraft:
			summary.DraftCount++
		case payroll.PayrollStatusPaid:
			summary.PaidCount++
		}
	}
	return summary, nil
}

// Transactor runs fn directly; the in-memory repositories have no rollback.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
