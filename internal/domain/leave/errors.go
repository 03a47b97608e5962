package leave

import "errors"

var (
	ErrHireDateMissing    = errors.New("employee has no hire date configured")
	ErrInvalidFormula     = errors.New("invalid leave surplus formula")
	ErrEmployeeIDRequired = errors.New("employee_id is required")
)
