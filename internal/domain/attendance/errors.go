package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out state machine
	ErrAlreadyCheckedIn        = errors.New("already checked in for this work date")
	ErrAlreadyCheckedOut       = errors.New("already checked out for this work date")
	ErrNotCheckedIn            = errors.New("no check-in found for this work date")
	ErrCheckOutNotAfterCheckIn = errors.New("check-out time must be after check-in time")

	// General
	ErrRecordNotFound = errors.New("attendance record not found")
)
