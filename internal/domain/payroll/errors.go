package payroll

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found in roster")
	ErrBadSnapshot      = errors.New("snapshot is not a valid payroll record array")
	ErrStorage          = errors.New("payroll storage failure")
)
