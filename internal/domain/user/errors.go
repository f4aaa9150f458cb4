package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrInvalidRole            = errors.New("invalid user role")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrNothingToUpdate        = errors.New("nothing to update")
)
