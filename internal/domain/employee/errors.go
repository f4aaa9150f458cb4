package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee profile not found")
	ErrEmployeeExists        = errors.New("employee with same email or code already exists")
	ErrInvalidRank           = errors.New("invalid employee rank")
	ErrInvalidEmploymentType = errors.New("invalid employment type")
)
