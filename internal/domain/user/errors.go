package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserInactive           = errors.New("user account is inactive")
	ErrEmailExists            = errors.New("email already registered")
	ErrApproverAccessRequired = errors.New("manager, hr_manager or admin role required")
	ErrHRAccessRequired       = errors.New("hr_manager or admin role required")
	ErrAdminAccessRequired    = errors.New("admin role required")
)
