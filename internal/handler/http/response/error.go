package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/auth"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/leave"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/storage"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
)

// errorMapping translates a sentinel into a status and code. An empty message
// falls back to err.Error().
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	// token
	{auth.ErrTokenExpired, http.StatusUnauthorized, CodeUnauthorized, "Token expired"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized, ""},
	{auth.ErrMissingClaims, http.StatusUnauthorized, CodeUnauthorized, ""},
	{auth.ErrEmployeeNotLinked, http.StatusBadRequest, CodeBadRequest, "Your account is not linked to an employee profile"},
	{user.ErrEmployeeIDRequired, http.StatusBadRequest, CodeBadRequest, "Your account is not linked to an employee profile"},

	// access
	{user.ErrAdminPrivilegeRequired, http.StatusForbidden, CodeForbidden, "Admin privilege required"},
	{user.ErrInsufficientPermissions, http.StatusForbidden, CodeForbidden, ""},
	{employee.ErrUnauthorized, http.StatusForbidden, CodeForbidden, ""},
	{attendance.ErrUnauthorized, http.StatusForbidden, CodeForbidden, ""},

	// employees
	{employee.ErrEmployeeNotFound, http.StatusNotFound, CodeNotFound, "Employee not found"},
	{payroll.ErrEmployeeNotFound, http.StatusNotFound, CodeNotFound, "Employee not found"},
	{employee.ErrEmailExists, http.StatusConflict, CodeConflict, "Email already registered"},
	{employee.ErrUserAlreadyLinked, http.StatusConflict, CodeConflict, "User is already linked to an employee profile"},
	{employee.ErrFutureDateNotAllowed, http.StatusBadRequest, CodeBadRequest, ""},

	// shifts
	{schedule.ErrShiftNotFound, http.StatusNotFound, CodeNotFound, "Shift not found"},
	{schedule.ErrShiftNameExists, http.StatusConflict, CodeConflict, "Shift name already exists"},
	{schedule.ErrShiftInUse, http.StatusConflict, CodeConflict, "Shift is still referenced by time entries"},

	// time entries and overrides
	{attendance.ErrTimeEntryNotFound, http.StatusNotFound, CodeNotFound, "Time entry not found"},
	{attendance.ErrOverrideNotFound, http.StatusNotFound, CodeNotFound, "Attendance override not found"},
	{attendance.ErrAlreadyClockedIn, http.StatusConflict, CodeConflict, ""},
	{attendance.ErrEntryStillOpen, http.StatusConflict, CodeConflict, ""},
	{attendance.ErrNotClockedIn, http.StatusBadRequest, CodeBadRequest, ""},
	{attendance.ErrOutsideAllowedRadius, http.StatusBadRequest, CodeBadRequest, ""},
	{attendance.ErrInvalidTimeRange, http.StatusBadRequest, CodeBadRequest, ""},

	// payroll
	{payroll.ErrPayrollRecordNotFound, http.StatusNotFound, CodeNotFound, "Payroll record not found"},
	{payroll.ErrPayrollRecordAlreadyExists, http.StatusConflict, CodeConflict, "Payroll record already exists for this period"},
	{payroll.ErrCannotDeletePaidRecord, http.StatusConflict, CodeConflict, ""},
	{payroll.ErrPayrollRecordAlreadyPaid, http.StatusConflict, CodeConflict, ""},
	{payroll.ErrInsufficientData, http.StatusUnprocessableEntity, CodeInsufficientData, ""},
	{payroll.ErrInvalidPeriod, http.StatusBadRequest, CodeBadRequest, ""},
	{payroll.ErrUnsupportedExportFormat, http.StatusBadRequest, CodeBadRequest, ""},
	{payroll.ErrNothingToExport, http.StatusBadRequest, CodeBadRequest, ""},

	// leave
	{leave.ErrHireDateMissing, http.StatusUnprocessableEntity, CodeInsufficientData, ""},
	{leave.ErrInvalidFormula, http.StatusBadRequest, CodeBadRequest, ""},

	// stored files
	{storage.ErrFileNotFound, http.StatusNotFound, CodeNotFound, "File not found"},
	{storage.ErrInvalidPath, http.StatusBadRequest, CodeBadRequest, "Invalid file path"},
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fail(w, http.StatusUnprocessableEntity, CodeValidation, "Validation failed", validationErrs.ToMap())
		return
	}

	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		message := m.message
		if message == "" {
			message = err.Error()
		}
		fail(w, m.status, m.code, message, nil)
		return
	}

	slog.Error("unhandled error", "error", err)
	fail(w, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred", nil)
}
