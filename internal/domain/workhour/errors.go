package workhour

import "errors"

// Work-hour domain errors
var (
	ErrFinalWorkHourNotFound = errors.New("final work hour record not found")
	ErrTotalsMismatch        = errors.New("final work hour totals do not match category sums")
)
