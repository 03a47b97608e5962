package auth

import "errors"

var (
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrTokenExpired      = errors.New("token has expired")
	ErrMissingClaims     = errors.New("required token claims are missing")
	ErrEmployeeNotLinked = errors.New("token is not linked to an employee profile")
)
