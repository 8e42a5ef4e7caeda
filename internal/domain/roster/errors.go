package roster

import "errors"

var (
	ErrNotFound      = errors.New("employee not found")
	ErrDuplicateName = errors.New("an employee with that name already exists")
	ErrStorage       = errors.New("roster storage failure")
)
