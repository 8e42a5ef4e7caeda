package vacation

import "errors"

var (
	ErrRequestNotFound = errors.New("vacation request not found")
	ErrAlreadyDecided  = errors.New("vacation request is no longer pending")
	ErrStorage         = errors.New("vacation storage failure")
)
