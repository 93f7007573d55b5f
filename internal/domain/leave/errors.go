package leave

import "errors"

var (
	ErrRequestNotFound       = errors.New("leave request not found")
	ErrTypeNotFound          = errors.New("leave type not found")
	ErrTypeInactive          = errors.New("leave type is inactive")
	ErrBalanceNotFound       = errors.New("leave balance not found")
	ErrOverlappingRequest    = errors.New("overlapping leave request exists")
	ErrInsufficientBalance   = errors.New("insufficient leave balance")
	ErrRequestNotPending     = errors.New("leave request is not pending")
	ErrRequestNotCancellable = errors.New("leave request can no longer be cancelled")
	ErrNotRequestOwner       = errors.New("leave request belongs to another employee")
)
