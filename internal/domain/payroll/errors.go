package payroll

import "errors"

var (
	ErrRecordNotFound   = errors.New("payroll record not found")
	ErrAlreadyPaid      = errors.New("payroll record is already paid")
	ErrInvalidPeriod    = errors.New("invalid payroll period")
	ErrNothingGenerated = errors.New("no active employees to generate payroll for")
)
