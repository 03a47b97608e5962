package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmailExists          = errors.New("email already registered")
	ErrUserAlreadyLinked    = errors.New("user is already linked to an employee profile")
	ErrFutureDateNotAllowed = errors.New("date cannot be in the future")
	ErrUnauthorized         = errors.New("unauthorized to access this employee")
)
