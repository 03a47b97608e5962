package payroll

import "errors"

var (
	ErrPayrollSettingsNotFound    = errors.New("payroll settings not found")
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollRecordAlreadyPaid   = errors.New("payroll record already paid, cannot modify")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrCannotDeletePaidRecord     = errors.New("cannot delete paid payroll record")
	ErrEmployeeNotFound           = errors.New("employee not found")
	ErrInsufficientData           = errors.New("employee profile is incomplete for payroll")
	ErrUnsupportedExportFormat    = errors.New("unsupported export format")
	ErrNothingToExport            = errors.New("no payroll records for this period")
)
