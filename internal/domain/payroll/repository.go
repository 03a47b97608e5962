package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context) (GlobalSettings, error)
	UpsertSettings(ctx context.Context, settings GlobalSettings) (GlobalSettings, error)

	// Payroll Records
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	FinalizePayrollRecords(ctx context.Context, ids []string, paidBy string) error
	DeletePayrollRecord(ctx context.Context, id string) error

	// Aggregations
	GetPayrollSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
}
