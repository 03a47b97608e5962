package payroll

import "context"

type PayrollService interface {
	// Settings
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)

	// Preview runs the calculation without persisting anything
	Preview(ctx context.Context, req PreviewRequest) (Breakdown, error)

	// Records
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)
	// GenerateCycle is the unauthenticated entry point used by background jobs
	GenerateCycle(ctx context.Context, cycle Cycle) (GeneratePayrollResponse, error)
	GetPayrollRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	FinalizePayroll(ctx context.Context, req FinalizePayrollRequest) error
	DeletePayrollRecord(ctx context.Context, id string) error

	// Reporting
	GetPayrollSummary(ctx context.Context, month, year int) (PayrollSummaryResponse, error)
	ExportPayroll(ctx context.Context, req ExportRequest) (ExportResult, error)
}
